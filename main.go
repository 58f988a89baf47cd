// Package main is the entry point for the preamble CLI.
package main

import "preamble.dev/pkg/preamble/cmd"

func main() {
	cmd.Execute()
}
