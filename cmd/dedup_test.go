package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetDedupCmd_Exists verifies getDedupCmd returns
// a valid command.
func TestGetDedupCmd_Exists(t *testing.T) {
	cmd := getDedupCmd()
	require.NotNil(t, cmd, "Dedup command should exist")
	assert.Equal(t, "dedup", cmd.Use,
		"Command name should be dedup")
}

// TestGetDedupCmd_ShortDescription verifies short
// description.
func TestGetDedupCmd_ShortDescription(t *testing.T) {
	cmd := getDedupCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "duplicate",
		"Short description should mention duplicates")
}

// TestGetDedupCmd_LongDescription verifies long
// description.
func TestGetDedupCmd_LongDescription(t *testing.T) {
	cmd := getDedupCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "occurrence_id",
		"Long description should mention the dedup key")
	assert.Contains(t, cmd.Long, "transaction",
		"Long description should mention transactions")
	assert.Contains(t, cmd.Long, "--dry-run",
		"Long description should point at dry runs")
}

// TestGetDedupCmd_HasRunE verifies run function is set.
func TestGetDedupCmd_HasRunE(t *testing.T) {
	cmd := getDedupCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetDedupCmd_DryRunFlag verifies --dry-run flag exists.
func TestGetDedupCmd_DryRunFlag(t *testing.T) {
	cmd := getDedupCmd()

	flag := cmd.Flags().Lookup("dry-run")
	require.NotNil(t, flag,
		"--dry-run flag should exist")

	assert.Equal(t, "false", flag.DefValue,
		"Default should be false")
	assert.Contains(t, flag.Usage, "without",
		"Usage should say nothing is changed")
}

// TestGetDedupCmd_PreferFlag verifies --prefer flag exists.
func TestGetDedupCmd_PreferFlag(t *testing.T) {
	cmd := getDedupCmd()

	flag := cmd.Flags().Lookup("prefer")
	require.NotNil(t, flag,
		"--prefer flag should exist")

	assert.Contains(t, flag.Usage, "OBIS",
		"Usage should name the sources")
	assert.Contains(t, flag.Usage, "GBIF",
		"Usage should name the sources")
}

// TestGetDedupCmd_Examples verifies examples in help.
func TestGetDedupCmd_Examples(t *testing.T) {
	cmd := getDedupCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "kurodb dedup --dry-run",
		"Should show dry-run example")
	assert.Contains(t, helpText, "kurodb dedup --prefer GBIF",
		"Should show prefer example")
}

// TestGetDedupCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetDedupCmd_IndependentInstances(t *testing.T) {
	cmd1 := getDedupCmd()
	cmd2 := getDedupCmd()

	// Should be different instances
	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")

	// Modifying one shouldn't affect the other
	cmd1.Short = "test1"
	cmd2.Short = "test2"

	assert.Equal(t, "test1", cmd1.Short)
	assert.Equal(t, "test2", cmd2.Short)
}
