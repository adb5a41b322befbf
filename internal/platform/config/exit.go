package config

import (
	"fmt"
	"os"
)

// Exitf prints one formatted line to stderr and terminates the process
// with exit code 1. Only call it from main functions; deferred cleanup
// does not run after os.Exit.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
