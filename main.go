// Package main is the entry point for the gitsync CLI.
package main

import "gitsync.dev/pkg/gitsync/cmd"

func main() {
	cmd.Execute()
}
