package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaExtensionError
	SchemaIndexError

	// Geometry and ocean table errors
	GeoOceansConfigError
	GeoBadPolygonError
	GeoBadPointError

	// Ingestion errors
	IngestSnapshotError
	IngestPageBeginError
	IngestPageCommitError
	IngestSaveError
	IngestClearSourceError
	IngestRunRecordError
	IngestBadStrategyError

	// Dedup errors
	DedupFindError
	DedupLoadGroupError
	DedupMergeError
	DedupDeleteError

	// Stats errors
	StatsQueryError
)
