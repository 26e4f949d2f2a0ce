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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/asgardeo/oidclogout/internal/system/config"
	"github.com/asgardeo/oidclogout/internal/system/database/client"
	"github.com/asgardeo/oidclogout/internal/system/database/model"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"

	// IdentityDB is the name of the identity database holding the registered applications.
	IdentityDB = "identity"

	pingTimeout = 5 * time.Second
)

// dbConfig represents the resolved driver configuration of a data source.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	identityClient client.DBClientInterface
	mu             sync.Mutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client for the given database name, connecting on first use.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	if dbName != IdentityDB {
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.identityClient != nil {
		return d.identityClient, nil
	}

	runtime := config.GetServerRuntime()
	dbClient, err := openClient(runtime.Config.Database.Identity, runtime.ServerHome)
	if err != nil {
		return nil, err
	}
	d.identityClient = dbClient
	return dbClient, nil
}

// Close closes the open database clients.
func (d *DBProvider) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.identityClient == nil {
		return nil
	}
	err := d.identityClient.Close()
	d.identityClient = nil
	return err
}

// openClient opens and verifies a connection for the given data source.
func openClient(dataSource config.DataSource, serverHome string) (client.DBClientInterface, error) {
	cfg, err := getDBConfig(dataSource, serverHome)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.driverName, cfg.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dataSource.Name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", dataSource.Name, err)
	}

	return client.NewDBClient(model.NewDB(db), cfg.driverName), nil
}

// getDBConfig returns the driver configuration based on the provided data source.
func getDBConfig(dataSource config.DataSource, serverHome string) (dbConfig, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		return dbConfig{
			driverName: dataSourceTypePostgres,
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
				dataSource.Name, dataSource.SSLMode),
		}, nil
	case dataSourceTypeSQLite:
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		return dbConfig{
			driverName: dataSourceTypeSQLite,
			dsn:        path.Join(serverHome, dataSource.Path) + options,
		}, nil
	default:
		return dbConfig{}, fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}
}
