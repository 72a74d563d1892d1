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

// Package tracing provides the OpenTelemetry tracer used to span each
// gateway request, and the per-request trace IDs derived from those spans
package tracing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidProvider is an error for an unrecognized tracing provider name
var ErrInvalidProvider = errors.New("invalid tracing provider")

const tracerName = "halgate"

// Provider names
const (
	ProviderNone   = "none"
	ProviderStdout = "stdout"
)

// Tracer wraps an OpenTelemetry tracer with its shutdown function
type Tracer struct {
	trace.Tracer
	flusher func(context.Context) error
}

// New returns a Tracer for the named provider
func New(provider string) (*Tracer, error) {
	switch provider {
	case "", ProviderNone:
		return &Tracer{Tracer: trace.NewNoopTracerProvider().Tracer(tracerName)}, nil
	case ProviderStdout:
		exp, err := stdouttrace.New()
		if err != nil {
			return nil, err
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		return &Tracer{
			Tracer:  tp.Tracer(tracerName),
			flusher: tp.Shutdown,
		}, nil
	}
	return nil, ErrInvalidProvider
}

// Shutdown flushes and stops the underlying provider
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.flusher == nil {
		return nil
	}
	return t.flusher(ctx)
}

// StartSpan opens a span for the named operation and returns the enriched
// context, the span, and the request trace ID. When the provider records no
// trace ID (e.g., the noop provider), a fresh UUID stands in so every
// request still carries a correlatable ID.
func (t *Tracer) StartSpan(ctx context.Context,
	name string) (context.Context, trace.Span, string) {
	sctx, span := t.Start(ctx, name)
	sc := span.SpanContext()
	if sc.HasTraceID() {
		return sctx, span, sc.TraceID().String()
	}
	return sctx, span, uuid.NewString()
}
