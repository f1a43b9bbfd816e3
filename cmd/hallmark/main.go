// Package main provides the hallmark CLI entry point.
// Implements: prd006-hallmark-cli R1;
//
//	docs/ARCHITECTURE § CLI.
package main

import "github.com/mesh-intelligence/hallmark/internal/cli"

func main() {
	cli.Execute()
}
