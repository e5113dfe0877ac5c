package state

import (
	"os"
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values, logger and
// configuration are set later when command line is parsed.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Out:   os.Stdout,
		start: time.Now(),
	}
}
