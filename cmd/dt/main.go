// Package main provides dt, which runs shell commands, records their output
// and compares runs of the same command over time.
package main

import "os"

const version = "0.1.0"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}
