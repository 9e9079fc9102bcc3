// Package main provides the kurodb CLI application.
// kurodb builds and maintains a curated PostgreSQL database of marine
// species observations imported from the OBIS and GBIF APIs.
package main

import "github.com/kuroshiolab/kurodb/cmd"

func main() {
	cmd.Execute()
}
