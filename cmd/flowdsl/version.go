package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stevie1mat/flowdsl"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowdsl",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "flowdsl version %s\n", strings.TrimSpace(flowdsl.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
