package main

import (
	"prcheck/internal/cli"
	_ "prcheck/internal/rules/checks"
)

// Populated at build time, e.g. -ldflags "-X main.version=v1.0.0".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
