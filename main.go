// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package main is the hoptrace CLI entry point.
package main

import (
	"github.com/hoptrace/hoptrace/cmd"
)

func main() {
	cmd.Execute()
}
