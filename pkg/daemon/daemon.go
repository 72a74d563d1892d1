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

// Package daemon wires configuration, observability, the response cache and
// the handler packages into a running HTTP service
package daemon

import (
	"context"
	"net/http"
	"time"

	"github.com/halgateway/halgate/pkg/cache/registration"
	"github.com/halgateway/halgate/pkg/config"
	"github.com/halgateway/halgate/pkg/daemon/instance"
	"github.com/halgateway/halgate/pkg/gateway"
	"github.com/halgateway/halgate/pkg/gateway/auth"
	authmem "github.com/halgateway/halgate/pkg/gateway/auth/memory"
	"github.com/halgateway/halgate/pkg/gateway/handlers/home"
	"github.com/halgateway/halgate/pkg/gateway/handlers/sessions"
	"github.com/halgateway/halgate/pkg/gateway/handlers/users"
	"github.com/halgateway/halgate/pkg/observability/logging"
	"github.com/halgateway/halgate/pkg/observability/logging/level"
	"github.com/halgateway/halgate/pkg/observability/metrics"
	"github.com/halgateway/halgate/pkg/observability/tracing"
)

const cacheName = "default"

// Build assembles the process instance from the provided configuration
func Build(cfg *config.Config) (*instance.Instance, error) {
	logger := newLogger(cfg)

	provider := ""
	if cfg.Tracing != nil {
		provider = cfg.Tracing.Provider
	}
	tracer, err := tracing.New(provider)
	if err != nil {
		return nil, err
	}

	if cfg.Auth != nil && cfg.Auth.CookieDomain != "" {
		auth.SetCookieDomain(cfg.Auth.CookieDomain)
	}

	if cfg.Caching == nil {
		cfg.Caching = config.New().Caching
	}
	c, err := registration.NewCache(cacheName, cfg.Caching.Cache)
	if err != nil {
		return nil, err
	}

	authenticator := authmem.New()
	if cfg.Auth != nil {
		for _, su := range cfg.Auth.Users {
			authenticator.AddUser(auth.User{
				ID:    su.ID,
				Name:  su.Name,
				Roles: su.Roles,
			}, su.Secret)
			if su.APIKey != "" {
				authenticator.AddAPIKey(su.APIKey, su.ID)
			}
		}
	}

	g := gateway.New(&gateway.Options{
		Logger:          logger,
		Tracer:          tracer,
		Authenticator:   authenticator,
		Cache:           c,
		CacheName:       cacheName,
		DefaultCacheTTL: cfg.Caching.TTL(),
	})

	uh := users.NewHandlers(users.NewStore())
	sh := sessions.NewHandlers(authenticator)
	var ds []*gateway.HandlerDescriptor
	ds = append(ds, home.Descriptors()...)
	ds = append(ds, uh.Descriptors()...)
	ds = append(ds, sh.Descriptors()...)
	if err := g.RegisterRoutes(ds...); err != nil {
		return nil, err
	}

	return &instance.Instance{
		Config:  cfg,
		Logger:  logger,
		Tracer:  tracer,
		Cache:   c,
		Gateway: g,
	}, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	logLevel := level.Info
	logFile := ""
	if cfg.Logging != nil {
		if cfg.Logging.LogLevel != "" {
			logLevel = level.Level(cfg.Logging.LogLevel)
		}
		logFile = cfg.Logging.LogFile
	}
	if logFile != "" {
		return logging.FileLogger(logFile, logLevel)
	}
	return logging.ConsoleLogger(logLevel)
}

// Run builds the process instance and serves until the listener fails or
// ctx is canceled
func Run(ctx context.Context, cfg *config.Config) error {
	in, err := instance.Get(func() (*instance.Instance, error) {
		return Build(cfg)
	})
	if err != nil {
		return err
	}
	logger := in.Logger
	defer logger.Close()
	defer in.Cache.Close()
	defer in.Tracer.Shutdown(context.Background())

	if in.Config.Metrics != nil && in.Config.Metrics.ListenAddress != "" {
		go func() {
			logger.Info("metrics listener starting", logging.Pairs{
				"address": in.Config.Metrics.ListenAddress,
			})
			if err := metrics.ListenAndServe(in.Config.Metrics.ListenAddress); err != nil {
				logger.Error("metrics listener failed", logging.Pairs{"detail": err})
			}
		}()
	}

	server := &http.Server{
		Addr:              in.Config.Frontend.ListenAddress,
		Handler:           in.Gateway,
		ReadHeaderTimeout: time.Duration(in.Config.Frontend.ReadHeaderTimeoutMS) * time.Millisecond,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("frontend listener starting", logging.Pairs{
			"address": in.Config.Frontend.ListenAddress,
		})
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down", nil)
		return server.Shutdown(sctx)
	case err := <-errCh:
		return err
	}
}
