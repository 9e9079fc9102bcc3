// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/db"
	"github.com/kuroshiolab/kurodb/pkg/lifecycle"
	"github.com/kuroshiolab/kurodb/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate. The PostGIS extension has to exist before
// AutoMigrate runs, because the observations table declares a
// geography column.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if err := m.enablePostGIS(ctx); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)

	// Connect with GORM
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	// Run GORM AutoMigrate to create schema
	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	// Indexes AutoMigrate cannot express
	// (GIST, descending, non-unique)
	if err := m.applyIndexes(ctx); err != nil {
		return err
	}

	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate. Index DDL uses IF NOT EXISTS, so
// reapplying it picks up new indexes and skips existing ones.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if err := m.enablePostGIS(ctx); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)

	// Connect with GORM
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	// Run GORM AutoMigrate
	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.applyIndexes(ctx); err != nil {
		return err
	}

	return nil
}

// enablePostGIS installs the PostGIS extension if the server
// does not have it yet.
func (m *manager) enablePostGIS(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	q := "CREATE EXTENSION IF NOT EXISTS postgis"
	if _, err := pool.Exec(ctx, q); err != nil {
		return ExtensionError("postgis", err)
	}

	return nil
}

// applyIndexes runs the raw index DDL every model declares.
func (m *manager) applyIndexes(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, am := range schema.AllModels() {
		model, ok := am.(schema.Model)
		if !ok {
			continue
		}
		for _, ddl := range model.IndexDDL() {
			if _, err := pool.Exec(ctx, ddl); err != nil {
				return IndexError(
					model.TableName(), indexName(ddl), err)
			}
		}
	}

	return nil
}
