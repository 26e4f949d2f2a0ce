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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/asgardeo/oidclogout/internal/system/config"
	"github.com/asgardeo/oidclogout/internal/system/log"
)

const (
	homeEnvironmentVariable = "OIDC_LOGOUT_HOME"
	defaultConfigFile       = "repository/conf/deployment.yaml"
	envFileName             = ".env"
)

type rootOptions struct {
	home       string
	configPath string
}

func main() {
	defer log.Sync()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "oidc-logout-server",
		Short:         "OpenID Connect RP-initiated logout server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve()
		},
	}
	root.PersistentFlags().StringVar(&opts.home, "home", os.Getenv(homeEnvironmentVariable),
		"Path to the server home directory (env "+homeEnvironmentVariable+")")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to the deployment configuration (defaults to <home>/"+defaultConfigFile+")")

	root.AddCommand(newServeCommand(opts), newValidateConfigCommand(opts))
	return root
}

// resolve fills in the home directory and configuration path and loads the .env file of the
// home directory. The .env file is loaded before the logger is first used so that it can set
// the log level.
func (o *rootOptions) resolve() error {
	if o.home == "" {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
		o.home = dir
	}
	if o.configPath == "" {
		o.configPath = filepath.Join(o.home, defaultConfigFile)
	}

	if err := godotenv.Load(filepath.Join(o.home, envFileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFileName, err)
	}
	return nil
}

func newValidateConfigCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Validate the deployment configuration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				log.GetLogger().Error("Invalid configuration", log.String("path", opts.configPath), log.Error(err))
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Configuration %s is valid (session store: %s, applications: %d)\n",
				opts.configPath, cfg.Session.Store, len(cfg.Applications))
			return err
		},
	}
}
