package schema

// Observation DDL methods
func (o Observation) TableName() string {
	return "observations"
}

// IndexDDL returns the indexes AutoMigrate does not create. The
// occurrence_id index is intentionally non-unique, the location index
// needs GIST, and the date index is descending for "latest first"
// queries.
func (o Observation) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_observations_occurrence_id ON observations (occurrence_id);",
		"CREATE INDEX IF NOT EXISTS idx_observations_species_name ON observations (species_name);",
		"CREATE INDEX IF NOT EXISTS idx_observations_name_key ON observations (name_key);",
		"CREATE INDEX IF NOT EXISTS idx_observations_date ON observations (observation_date DESC);",
		"CREATE INDEX IF NOT EXISTS idx_observations_source ON observations (source);",
		"CREATE INDEX IF NOT EXISTS idx_observations_location ON observations USING GIST (location);",
	}
}

// IngestRun DDL methods
func (r IngestRun) TableName() string {
	return "ingest_runs"
}

func (r IngestRun) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_ingest_runs_started_at ON ingest_runs (started_at DESC);",
	}
}
