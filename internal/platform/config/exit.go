package config

import (
	"fmt"
	"log"
	"os"
)

// Exitf reports a fatal startup error on stderr, prefixed like the standard
// logger, and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprint(os.Stderr, log.Prefix())
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
