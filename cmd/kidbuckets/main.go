// Package main provides the kidbuckets CLI: a plain console surface over
// the offline-first money-buckets data layer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
