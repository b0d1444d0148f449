package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vippsas/bytesearch"
	"github.com/vippsas/bytesearch/internal/filelist"
)

// corpus lexes the files named in args, or the directory flag if none.
func corpus(args []string, partialResults bool) (bytesearch.Corpus, error) {
	cfg, err := loadOptionalConfig()
	if err != nil {
		return bytesearch.Corpus{}, err
	}
	exts := extensions
	if len(exts) == 0 {
		exts = cfg.Extensions
	}

	var fsys fs.FS = os.DirFS(directory)
	if len(args) > 0 {
		fsys, err = filelist.New(args...)
		if err != nil {
			return bytesearch.Corpus{}, err
		}
	}
	return bytesearch.Include(
		bytesearch.Options{
			Extensions:     exts,
			PartialResults: partialResults,
			Logger:         logrus.StandardLogger(),
			Concurrency:    cfg.Concurrency,
		},
		fsys,
	)
}

var (
	statsCmd = &cobra.Command{
		Use:   "stats [files...]",
		Short: "Lex the directory tree, or the given files, and report token counts per file",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus(args, true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(c.Files) == 0 {
				fmt.Fprintln(out, "No source files found in given paths")
				return nil
			}
			for _, f := range c.Files {
				fmt.Fprintf(out, "%s: %d bytes, %d lines\n", f.Path, f.Bytes, f.Lines)
				writeTokenCounts(out, f.Tokens)
			}
			fmt.Fprintf(out, "total: %d files, %d bytes\n", len(c.Files), c.Bytes())
			writeTokenCounts(out, c.Tokens())

			if errs := c.Errors(); len(errs) > 0 {
				fmt.Fprintln(out, "Errors:")
				for _, e := range errs {
					fmt.Fprintf(out, "%s:%d:%d: %s\n", e.Pos.File, e.Pos.Line, e.Pos.Col, e.Message)
				}
			}
			return nil
		},
	}

	hashCmd = &cobra.Command{
		Use:   "hash",
		Short: "Compute the fingerprint that identifies the corpus in recorded benchmark runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus(nil, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Fingerprint)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(hashCmd)
}
