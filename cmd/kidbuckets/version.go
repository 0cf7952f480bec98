package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kidbuckets version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kidbuckets " + version)
	},
}
