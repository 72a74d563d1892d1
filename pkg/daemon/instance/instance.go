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

// Package instance provides the process-wide container of long-lived
// collaborators. It is built lazily exactly once and read-only thereafter,
// so request goroutines share it without locking.
package instance

import (
	"sync"

	"github.com/halgateway/halgate/pkg/cache"
	"github.com/halgateway/halgate/pkg/config"
	"github.com/halgateway/halgate/pkg/gateway"
	"github.com/halgateway/halgate/pkg/observability/logging"
	"github.com/halgateway/halgate/pkg/observability/tracing"
)

// Instance is the assembled set of process-wide collaborators
type Instance struct {
	Config  *config.Config
	Logger  logging.Logger
	Tracer  *tracing.Tracer
	Cache   cache.Client
	Gateway *gateway.Gateway
}

var (
	once     sync.Once
	current  *Instance
	buildErr error
)

// Get returns the process instance, constructing it on first call with the
// provided builder. Later calls return the same instance and ignore the
// builder.
func Get(build func() (*Instance, error)) (*Instance, error) {
	once.Do(func() {
		current, buildErr = build()
	})
	return current, buildErr
}
