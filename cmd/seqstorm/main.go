// Package main is the entry point for the seqstorm editor.
package main

import "github.com/dshills/seqstorm/internal/cli"

func main() {
	cli.Execute()
}
