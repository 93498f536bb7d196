package main

import (
	"fmt"
	"os"

	"github.com/wealthpath/datecheck/internal/apperror"
	"github.com/wealthpath/datecheck/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		code := apperror.GetExitCode(err)
		if code == apperror.ExitInternal {
			logger.Error("command failed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", apperror.GetMessage(err))
		os.Exit(code)
	}
}
