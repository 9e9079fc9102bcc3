package lifecycle_test

import (
	"testing"

	"github.com/kuroshiolab/kurodb/internal/iostats"
	"github.com/kuroshiolab/kurodb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestReporterContract ensures that the iostats implementation
// satisfies the lifecycle.Reporter interface.
// This is a compile-time check, and the test will not run if the contract
// is broken.
func TestReporterContract(t *testing.T) {
	// The following line is a compile-time check.
	// If the iostats engine does not implement lifecycle.Reporter,
	// this code will fail to compile.
	var _ lifecycle.Reporter = iostats.NewReporter(nil)

	// This assertion is a runtime check to confirm the test was executed.
	assert.True(t, true, "iostats.NewReporter should return a lifecycle.Reporter")
}
