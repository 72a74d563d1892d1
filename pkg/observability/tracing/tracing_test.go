/*
 * Copyright 2025 The Halgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tracing

import (
	"context"
	"testing"
)

func TestNewInvalidProvider(t *testing.T) {
	if _, err := New("jaeger2"); err != ErrInvalidProvider {
		t.Errorf("expected ErrInvalidProvider got %v", err)
	}
}

func TestNoopTracerTraceID(t *testing.T) {
	tr, err := New(ProviderNone)
	if err != nil {
		t.Fatal(err)
	}
	ctx, span, traceID := tr.StartSpan(context.Background(), "request")
	defer span.End()
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if traceID == "" {
		t.Error("expected a fallback trace ID from the noop provider")
	}
	_, _, traceID2 := tr.StartSpan(context.Background(), "request")
	if traceID == traceID2 {
		t.Error("expected distinct trace IDs per span")
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestStdoutTracerTraceID(t *testing.T) {
	tr, err := New(ProviderStdout)
	if err != nil {
		t.Fatal(err)
	}
	_, span, traceID := tr.StartSpan(context.Background(), "request")
	span.End()
	if len(traceID) != 32 {
		t.Errorf("expected a 16-byte hex trace ID, got %q", traceID)
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}
