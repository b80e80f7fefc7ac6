// Package main is the entry point for the rustcfg CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/rustcfg/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
