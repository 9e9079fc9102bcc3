package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records per bulk-insert batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptGBIFBaseURL sets the GBIF API base URL.
func OptGBIFBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidString("GBIF Base URL", s) {
			c.GBIF.BaseURL = s
		}
	}
}

// OptGBIFPageLimit sets the GBIF page size. The API caps pages at 300;
// the client clamps larger values.
func OptGBIFPageLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("GBIF Page Limit", i) {
			c.GBIF.PageLimit = i
		}
	}
}

// OptGBIFNetworkKey sets the GBIF network used by the "network" strategy.
func OptGBIFNetworkKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("GBIF Network Key", s) {
			c.GBIF.NetworkKey = s
		}
	}
}

// OptGBIFCourtesyDelayMs sets the pause between GBIF requests.
// Zero disables the delay.
func OptGBIFCourtesyDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegInt("GBIF Courtesy Delay", i) {
			c.GBIF.CourtesyDelayMs = i
		}
	}
}

// OptOBISBaseURL sets the OBIS API base URL.
func OptOBISBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidString("OBIS Base URL", s) {
			c.OBIS.BaseURL = s
		}
	}
}

// OptOBISPageSize sets the OBIS page size.
func OptOBISPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("OBIS Page Size", i) {
			c.OBIS.PageSize = i
		}
	}
}

// OptOBISCourtesyDelayMs sets the pause between OBIS requests.
// Zero disables the delay.
func OptOBISCourtesyDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegInt("OBIS Courtesy Delay", i) {
			c.OBIS.CourtesyDelayMs = i
		}
	}
}

// OptWoRMSBaseURL sets the WoRMS REST API base URL.
func OptWoRMSBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidString("WoRMS Base URL", s) {
			c.WoRMS.BaseURL = s
		}
	}
}

// OptWoRMSTimeoutSec sets the per-request timeout for WoRMS calls.
func OptWoRMSTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("WoRMS Timeout", i) {
			c.WoRMS.TimeoutSec = i
		}
	}
}

// OptIngestMaxRecords sets the saved-records budget for sync runs.
func OptIngestMaxRecords(i int) Option {
	return func(c *Config) {
		if isValidInt("Ingest Max Records", i) {
			c.Ingest.MaxRecords = i
		}
	}
}

// OptIngestStrategy sets the geographic partitioning strategy.
// Valid values: "network", "geometry", "oceans".
// Runtime-only field - not in ToOptions().
func OptIngestStrategy(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Ingest.Strategy", s) {
			c.Ingest.Strategy = s
		}
	}
}

// OptIngestYear sets the year filter for GBIF runs: "2024" or "2015,2024".
// Runtime-only field - not in ToOptions().
func OptIngestYear(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Year", s) {
			c.Ingest.Year = s
		}
	}
}

// OptIngestGeometry sets the WKT polygon filter for the "geometry"
// strategy. The CLI validates the polygon before a run starts.
// Runtime-only field - not in ToOptions().
func OptIngestGeometry(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geometry", s) {
			c.Ingest.Geometry = s
		}
	}
}

// OptIngestTaxonKey sets the GBIF taxon key filter.
// Runtime-only field - not in ToOptions().
func OptIngestTaxonKey(i int) Option {
	return func(c *Config) {
		if isValidInt("Taxon Key", i) {
			c.Ingest.TaxonKey = i
		}
	}
}

// OptIngestTaxonID sets the OBIS taxon (AphiaID) filter.
// Runtime-only field - not in ToOptions().
func OptIngestTaxonID(i int) Option {
	return func(c *Config) {
		if isValidInt("Taxon ID", i) {
			c.Ingest.TaxonID = i
		}
	}
}

// OptIngestStartDate sets the OBIS start date filter (YYYY-MM-DD).
// Runtime-only field - not in ToOptions().
func OptIngestStartDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Start Date", s) {
			c.Ingest.StartDate = s
		}
	}
}

// OptIngestEndDate sets the OBIS end date filter (YYYY-MM-DD).
// Runtime-only field - not in ToOptions().
func OptIngestEndDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("End Date", s) {
			c.Ingest.EndDate = s
		}
	}
}

// OptDedupPrefer sets which source wins primary selection during merges.
// Valid values: "OBIS", "GBIF".
func OptDedupPrefer(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)
	return func(c *Config) {
		if isValidEnum("Dedup.Prefer", s) {
			c.Dedup.Prefer = s
		}
	}
}

// OptDedupDryRun enables dry-run mode for the merge engine.
// Runtime-only field - not in ToOptions().
func OptDedupDryRun(b bool) Option {
	return func(c *Config) {
		c.Dedup.DryRun = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdin", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
