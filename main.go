// Package main is the entry point for the cd2ifier CLI.
package main

import "github.com/vonacht/cd2ifier/cmd"

func main() {
	cmd.Execute()
}
