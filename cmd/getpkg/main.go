package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/output"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, output.RenderError(err))
		os.Exit(errors.ExitCode(errors.GetErrorCode(err)))
	}
}
