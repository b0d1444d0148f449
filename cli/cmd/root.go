package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "bytesearch",
		Short:        "bytesearch",
		SilenceUsage: true,
		Long:         `CLI tool for lexing JavaScript-family source trees with table-driven byte searches, and for benchmarking the lexer.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	directory  string
	extensions []string
	logLevel   string
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "path to directory and subtree which will be scanned for source files; also where bytesearch.yaml is looked for")
	rootCmd.PersistentFlags().StringSliceVar(&extensions, "ext", nil, "file extensions to include (default .js,.mjs,.cjs,.ts,.jsx,.tsx)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "logrus log level; overrides loglevel in bytesearch.yaml")
	return rootCmd.Execute()
}

func setupLogging() error {
	level := logLevel
	if level == "" {
		cfg, err := loadOptionalConfig()
		if err != nil {
			return err
		}
		level = cfg.LogLevel
	}
	if level == "" {
		return nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(parsed)
	return nil
}
