// ABOUTME: Entry point for gym CLI.
// ABOUTME: Invokes the root Cobra command and exits non-zero on failure.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
