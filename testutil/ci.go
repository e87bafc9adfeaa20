package testutil

import (
	"os"
	"testing"
)

const envUseCI = "HASHLOOKUP_CI"

// SkipCI skips long-running tests unless HASHLOOKUP_CI is set.
func SkipCI(t testing.TB) {
	if os.Getenv(envUseCI) == "" {
		t.Skip("Skip long test outside CI")
	}
}
