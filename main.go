// Package main is the entry point for the drill CLI.
package main

import "gooze.dev/pkg/drill/cmd"

func main() {
	cmd.Execute()
}
