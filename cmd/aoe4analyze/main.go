package main

import (
	"os"

	"github.com/domino14/aoe4analyze/cli"
)

var GitVersion string

func main() {
	if GitVersion != "" {
		cli.Version = GitVersion
	}
	os.Exit(cli.Execute())
}
