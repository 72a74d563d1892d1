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

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/halgateway/halgate/pkg/gateway/request"
	"github.com/halgateway/halgate/pkg/observability/logging"
	"github.com/halgateway/halgate/pkg/observability/metrics"
	"github.com/halgateway/halgate/pkg/router"
)

// Logging returns the logging wrapper: a start event before delegating, a
// completion event with elapsed time and status on success, a failure event
// with elapsed time and full error detail on error. The error is returned
// unmodified. The clock is read immediately before delegation and
// immediately after settlement, so the duration is never negative.
func Logging() Middleware {
	return func(next router.Handler) router.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			res := request.GetResources(r)
			logger, traceID, template := logging.NoopLogger(), "", r.URL.Path
			if res != nil {
				if res.Logger != nil {
					logger = res.Logger
				}
				traceID = res.TraceID
				if res.RouteTemplate != "" {
					template = res.RouteTemplate
				}
			}
			logger.Info("request started", logging.Pairs{
				"method":  r.Method,
				"path":    r.URL.Path,
				"traceID": traceID,
			})
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			err := next(sr, r)
			elapsed := time.Since(start)
			metrics.FrontendRequestDuration.WithLabelValues(r.Method,
				template).Observe(elapsed.Seconds())
			if err != nil {
				logger.Error("request failed", logging.Pairs{
					"method":  r.Method,
					"path":    r.URL.Path,
					"traceID": traceID,
					"elapsed": elapsed,
					"detail":  err,
				})
				return err
			}
			metrics.FrontendRequestStatus.WithLabelValues(r.Method, template,
				strconv.Itoa(sr.status)).Inc()
			logger.Info("request completed", logging.Pairs{
				"method":     r.Method,
				"path":       r.URL.Path,
				"traceID":    traceID,
				"elapsed":    elapsed,
				"httpStatus": sr.status,
			})
			return nil
		}
	}
}
