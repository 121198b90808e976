// Package main provides the entry point for the scriptkit CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/scriptkit/cmd/scriptkit/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
