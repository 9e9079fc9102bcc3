package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue
  - GORM driver problem

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration
  3. Verify GORM dependencies are installed`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Invalid schema definitions
  - Database constraint violations

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Review schema model definitions
  3. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions
  - Data integrity issues

<em>How to fix:</em>
  1. Review migration compatibility
  2. Check database user permissions
  3. Backup data before migration`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// ExtensionError creates an error for extension
// installation failures.
func ExtensionError(name string, err error) error {
	msg := `Cannot enable the <em>%s</em> extension

<em>Possible causes:</em>
  - Extension is not installed on the server
  - Database user lacks CREATE privilege

<em>How to fix:</em>
  1. Install the package, e.g. <em>postgresql-16-postgis-3</em>
  2. Or run as a superuser: <em>CREATE EXTENSION %s</em>`

	vars := []any{name, name}

	return &gn.Error{
		Code: errcode.SchemaExtensionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to enable extension %s: %w", name, err),
	}
}

// IndexError creates an error for index creation failures.
func IndexError(table, index string, err error) error {
	msg := `Cannot create index <em>%s</em> on <em>%s</em>

<em>Possible causes:</em>
  - Table was not created successfully
  - Insufficient database permissions
  - PostGIS missing for spatial indexes

<em>How to fix:</em>
  1. Run <em>kurodb create</em> to rebuild the schema
  2. Check database user permissions`

	vars := []any{index, table}

	return &gn.Error{
		Code: errcode.SchemaIndexError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to create index %s on %s: %w",
			index, table, err),
	}
}
