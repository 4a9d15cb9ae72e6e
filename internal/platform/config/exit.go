package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted error message to stderr and exits with
// code 1. The artshop command uses it for unrecoverable startup
// failures such as an unreadable database path.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
