// Package main is the entry point for the motiongen CLI.
package main

import (
	"os"

	"github.com/hazzler78/sd-motion-generator/cmd/motiongen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
