// Package main provides the peoplebook server binary.
package main

import "os"

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
