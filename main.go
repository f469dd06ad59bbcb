// Package main is the entry point for the wikiq CLI
package main

import "github.com/gaurav-prasanna/wikiq/cmd"

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
