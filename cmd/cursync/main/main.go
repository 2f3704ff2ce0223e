package main

import (
	"fmt"
	"os"

	"github.com/cursync/cursync/cmd/cursync"
	"github.com/cursync/cursync/pkg/style"
)

func main() {
	rootCmd := cursync.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Error(err))
		os.Exit(1)
	}
}
