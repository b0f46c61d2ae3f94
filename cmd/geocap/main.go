// Package main provides the geocap CLI.
package main

import "github.com/mesh-intelligence/geocap/internal/cli"

func main() {
	cli.Execute()
}
