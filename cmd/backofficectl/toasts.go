package main

import (
	"fmt"
	"os"
)

// consoleToasts renders notifications on stderr, the CLI's stand-in for the
// dashboard's toast widget.
type consoleToasts struct{}

func (consoleToasts) ShowSuccess(message string) {
	fmt.Fprintf(os.Stderr, "OK: %s\n", message)
}

func (consoleToasts) ShowError(message string) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", message)
}
