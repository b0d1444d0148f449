package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vippsas/bytesearch/lexer"
	"github.com/vippsas/bytesearch/source"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type tokenRecord struct {
	Type  string `yaml:"type" msgpack:"type"`
	Start string `yaml:"start" msgpack:"start"`
	Stop  string `yaml:"stop" msgpack:"stop"`
	Value string `yaml:"value" msgpack:"value"`
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	triviaColor  = color.New(color.FgHiBlack)
	literalColor = color.New(color.FgGreen)
	identColor   = color.New(color.FgCyan)
)

func tokenColor(tt lexer.TokenType) *color.Color {
	switch {
	case tt.IsError():
		return errorColor
	case tt.IsTrivia():
		return triviaColor
	case tt == lexer.StringLiteralToken || tt == lexer.TemplateLiteralToken || tt == lexer.NumberToken:
		return literalColor
	case tt == lexer.IdentifierToken:
		return identColor
	}
	return color.New(color.Reset)
}

func writeTokens(w io.Writer, tokens []lexer.Unparsed, format string) error {
	switch format {
	case "text":
		for _, u := range tokens {
			fmt.Fprintf(w, "%-14s %s %s\n",
				u.Start.String(),
				tokenColor(u.Type).Sprintf("%-34s", u.Type),
				repr.String(u.RawValue))
		}
		return nil
	case "yaml", "msgpack":
		records := make([]tokenRecord, 0, len(tokens))
		for _, u := range tokens {
			records = append(records, tokenRecord{
				Type:  u.Type.String(),
				Start: u.Start.String(),
				Stop:  u.Stop.String(),
				Value: u.RawValue,
			})
		}
		var data []byte
		var err error
		if format == "yaml" {
			data, err = yaml.Marshal(records)
		} else {
			data, err = msgpack.Marshal(records)
		}
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown format %q; expected text, yaml or msgpack", format)
}

func writeTokenCounts(w io.Writer, counts map[lexer.TokenType]int) {
	for tt := lexer.WhitespaceToken; tt <= lexer.EOFToken; tt++ {
		if n := counts[tt]; n > 0 {
			fmt.Fprintf(w, "  %-34s %d\n", tt, n)
		}
	}
}

var (
	tokensFormat string

	tokensCmd = &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the tokens of a single file to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <file>")
			}
			input, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tokens := lexer.Tokenize(source.FileRef(args[0]), string(input))
			return writeTokens(cmd.OutOrStdout(), tokens, tokensFormat)
		},
	}
)

func init() {
	tokensCmd.Flags().StringVar(&tokensFormat, "format", "text", "output format: text, yaml or msgpack")
	rootCmd.AddCommand(tokensCmd)
}
