package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/jptr/cmd"
	"github.com/oakwood-commons/jptr/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exitCode = cmd.ExitCode(err)
		if exitCode == cmd.ExitUsage {
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", os.Args[0])
		}
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
