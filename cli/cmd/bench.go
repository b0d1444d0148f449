package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vippsas/bytesearch"
)

var (
	benchRounds int
	benchRecord string

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Lex the directory tree repeatedly and report throughput",
		Long:  "Lex the directory tree repeatedly and report throughput. With --record, the run is stored in a database configured in bytesearch.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			c, err := corpus(args, false)
			if err != nil {
				return err
			}
			run, err := bytesearch.Benchmark(ctx, c, benchRounds)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"id":     run.ID.String(),
				"rounds": run.Rounds,
			}).Info("benchmark finished")
			fmt.Fprintln(cmd.OutOrStdout(), run)

			if benchRecord == "" {
				return nil
			}
			dbc, err := openDatabase(ctx, benchRecord)
			if err != nil {
				return err
			}
			defer func() {
				_ = dbc.Close()
			}()
			if err := bytesearch.EnsureRunTable(ctx, dbc); err != nil {
				return err
			}
			if err := bytesearch.RecordRun(ctx, dbc, run); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s recorded in %s\n", run.ID, benchRecord)
			return nil
		},
	}

	runsLimit int

	runsCmd = &cobra.Command{
		Use:   "runs <dbname>",
		Short: "List benchmark runs recorded in a database configured in bytesearch.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) != 1 {
				_ = cmd.Help()
				return fmt.Errorf("need to specify argument <dbname>")
			}
			dbc, err := openDatabase(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() {
				_ = dbc.Close()
			}()
			runs, err := bytesearch.ListRuns(ctx, dbc, runsLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s %s %s\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r)
			}
			return nil
		},
	}
)

func init() {
	benchCmd.Flags().IntVar(&benchRounds, "rounds", 10, "number of times every file is lexed")
	benchCmd.Flags().StringVar(&benchRecord, "record", "", "name of a database in bytesearch.yaml to record the run in")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to list")
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
}
