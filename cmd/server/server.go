/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/asgardeo/oidclogout/internal/application"
	"github.com/asgardeo/oidclogout/internal/cert"
	"github.com/asgardeo/oidclogout/internal/managers"
	"github.com/asgardeo/oidclogout/internal/oidc/session"
	"github.com/asgardeo/oidclogout/internal/system/cache"
	"github.com/asgardeo/oidclogout/internal/system/config"
	"github.com/asgardeo/oidclogout/internal/system/database/provider"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the logout server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, opts)
		},
	}
}

// runServer starts the server and blocks until the context is cancelled or the server fails.
func runServer(ctx context.Context, opts *rootOptions) error {
	logger := log.GetLogger()

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		logger.Error("Failed to load configurations", log.String("path", opts.configPath), log.Error(err))
		return err
	}
	if err := config.InitializeServerRuntime(opts.home, cfg); err != nil {
		logger.Error("Failed to initialize the server runtime", log.Error(err))
		return err
	}

	if !cfg.Cache.Disabled {
		cache.StartCleanupRoutine(ctx, cfg.Cache.CleanupInterval)
	}

	appService := application.Initialize(cfg)
	defer func() {
		if err := provider.GetDBProvider().Close(); err != nil {
			logger.Error("Failed to close the database connections", log.Error(err))
		}
	}()

	stores, err := session.Initialize(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize the session stores", log.Error(err))
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Error("Failed to close the session stores", log.Error(err))
		}
	}()

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.Recoverer, log.AccessLogMiddleware(logger))

	serviceManager := managers.NewServiceManager(router, cfg, managers.Dependencies{
		ApplicationService: appService,
		KeyProvider:        cert.NewKeyProvider(resolvePath(opts.home, cfg.Tenant.KeyDirectory)),
		SessionStores:      stores,
	})
	if err := serviceManager.RegisterServices(); err != nil {
		logger.Error("Failed to register the services", log.Error(err))
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if !cfg.Server.HTTPOnly {
		tlsConfig, err := cert.GetTLSConfig(&cfg.Security, opts.home)
		if err != nil {
			logger.Error("Failed to load TLS configuration", log.Error(err))
			return err
		}
		server.TLSConfig = tlsConfig
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("Starting OIDC logout server", log.String("address", server.Addr),
			log.Bool("httpOnly", cfg.Server.HTTPOnly))
		var serveErr error
		if cfg.Server.HTTPOnly {
			serveErr = server.ListenAndServe()
		} else {
			serveErr = server.ListenAndServeTLS("", "")
		}
		if errors.Is(serveErr, http.ErrServerClosed) {
			return nil
		}
		return serveErr
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down OIDC logout server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("Server stopped with an error", log.Error(err))
		return err
	}
	return nil
}

// resolvePath resolves a configured path relative to the server home directory.
func resolvePath(home, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(home, p)
}
