// Package main is the entry point for the castxml CLI tool.
package main

import (
	"github.com/ceeaziza/CastXML/internal/cmd"
)

func main() {
	cmd.Execute()
}
