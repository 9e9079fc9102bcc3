package ioschema

import "strings"

// indexName pulls the index name out of a CREATE INDEX statement for
// error reporting. Falls back to the whole statement when the shape is
// unexpected.
func indexName(ddl string) string {
	fields := strings.Fields(ddl)
	for i, f := range fields {
		if strings.EqualFold(f, "EXISTS") && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	for i, f := range fields {
		if strings.EqualFold(f, "INDEX") && i+1 < len(fields) &&
			!strings.EqualFold(fields[i+1], "IF") {
			return fields[i+1]
		}
	}
	return ddl
}
