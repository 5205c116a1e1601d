package main

import "github.com/fabinfo/to-data/cmd"

// main is the entry point of the to-data CLI application.
// It executes the root command which converts the file named on the command line.
func main() {
	cmd.Execute()
}
