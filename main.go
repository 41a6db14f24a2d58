// Package main provides a pointer to the real entry point.
// spsim is a cycle-accurate simulator for the SP pipeline.
//
// For the full CLI, use: go run ./cmd/spsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("spsim - SP pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: spsim [options] <program.hex>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to run configuration JSON file")
	fmt.Println("  -max-cycles  Override the configured cycle bound")
	fmt.Println("  -no-trace    Disable cycle trace and SRAM dump output")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/spsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/spsim' instead.")
	}
}
