package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/spf13/cobra"
)

// syncFlags holds the flag values shared by the sync subcommands.
type syncFlags struct {
	strategy      string
	geometry      string
	maxRecords    int
	clearExisting bool
	force         bool
}

// registerSyncFlags wires the shared sync flags onto one subcommand.
func registerSyncFlags(cmd *cobra.Command, f *syncFlags) {
	cmd.Flags().StringVar(&f.strategy, "strategy", "",
		"sweep strategy: network, geometry or oceans")
	cmd.Flags().StringVar(&f.geometry, "geometry", "",
		"WKT polygon for the geometry strategy")
	cmd.Flags().IntVarP(&f.maxRecords, "max-records", "m", 0,
		"stop after saving this many records")
	cmd.Flags().BoolVar(&f.clearExisting, "clear-existing", false,
		"delete stored records of this source before the import")
	cmd.Flags().BoolVarP(&f.force, "force", "f", false,
		"skip the clear-existing confirmation")
}

// syncOptions converts the shared flags the user actually set into
// config options. Unset flags leave the config defaults alone.
func syncOptions(cmd *cobra.Command, f *syncFlags) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("strategy") {
		res = append(res, config.OptIngestStrategy(f.strategy))
	}
	if cmd.Flags().Changed("geometry") {
		res = append(res, config.OptIngestGeometry(f.geometry))
	}
	if cmd.Flags().Changed("max-records") {
		res = append(res, config.OptIngestMaxRecords(f.maxRecords))
	}
	return res
}

// confirm asks a yes/no question on stdin and reports the answer.
// A read failure counts as no.
func confirm(question string) bool {
	fmt.Printf("\n%s (yes/no): ", question)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}
