// Package main is quotewallctl, a terminal client for the quote wall that
// talks to the quote and meme endpoints directly.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
