package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath     string
	candidatesPath string
	outputPath     string
	dotPath        string
)

var rootCmd = &cobra.Command{
	Use:           "followgraph",
	Short:         "Collect and analyse who a set of candidates follow",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml (default $CONFIG_PATH or config/config.toml)")
	rootCmd.PersistentFlags().StringVar(&candidatesPath, "candidates", "candidates.txt", "file with one '<name> <cohort>' per line")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "JSON summary path (overrides output.json_path)")
	rootCmd.PersistentFlags().StringVar(&dotPath, "dot", "", "Graphviz output path (overrides output.dot_path)")

	rootCmd.AddCommand(runCmd, serveCmd)
}
