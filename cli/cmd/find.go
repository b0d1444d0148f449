package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vippsas/bytesearch"
	"github.com/vippsas/bytesearch/source"
)

var (
	findCmd = &cobra.Command{
		Use:   "find <file> <byteset>",
		Short: "Print the position of every byte in a file that matches a byte set",
		Long: `Print the position of every byte in a file that matches a byte set.

A byte set is a comma separated list of bytes and ranges, e.g. 'a-z,_,0x80-0xFF'.
Bytes are written as ASCII characters, quoted characters ('x'), escapes
(\t \n \r \s \\ \, \- \') or hex (0xNN).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				_ = cmd.Help()
				return errors.New("need to specify arguments <file> <byteset>")
			}
			input, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			matches, err := bytesearch.FindBytes(source.FileRef(args[0]), string(input), args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintf(out, "%s 0x%02X\n", m.Pos, m.Byte)
			}
			return nil
		},
	}

	stripCmd = &cobra.Command{
		Use:   "strip <file>",
		Short: "Print a file with its comments removed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <file>")
			}
			input, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stripped, err := bytesearch.StripComments(source.FileRef(args[0]), string(input))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), stripped.Text)
			return err
		},
	}
)

func init() {
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(stripCmd)
}
