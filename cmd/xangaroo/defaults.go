package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sleewja/xangaroo/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the embedded default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	},
}
