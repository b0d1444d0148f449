package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vippsas/bytesearch/lexer"
	"github.com/vippsas/bytesearch/search"
)

// describeBytes lists the ASCII bytes table matches as ranges, and summarizes
// the rest.
func describeBytes(table *search.SafeByteMatchTable) string {
	var parts []string
	for lo := 0; lo < 128; lo++ {
		if !table.Matches(byte(lo)) {
			continue
		}
		hi := lo
		for hi+1 < 128 && table.Matches(byte(hi+1)) {
			hi++
		}
		if hi == lo {
			parts = append(parts, fmt.Sprintf("%q", rune(lo)))
		} else {
			parts = append(parts, fmt.Sprintf("%q-%q", rune(lo), rune(hi)))
		}
		lo = hi
	}
	nonASCII := 0
	for b := 128; b < 256; b++ {
		if table.Matches(byte(b)) {
			nonASCII++
		}
	}
	if nonASCII > 0 {
		parts = append(parts, fmt.Sprintf("%d non-ASCII", nonASCII))
	}
	return strings.Join(parts, " ")
}

func writeTables(w io.Writer) {
	for _, nt := range lexer.Tables() {
		fmt.Fprintf(w, "%s: %s\n", nt.Name, nt.Description)
		fmt.Fprintf(w, "  safe: %s\n", nt.Table.Condition())
		fmt.Fprintf(w, "  matches: %s\n", describeBytes(nt.Table))
	}
}

var (
	tablesCmd = &cobra.Command{
		Use:   "tables",
		Short: "List the byte tables the lexer searches with and why each is safe",
		RunE: func(cmd *cobra.Command, args []string) error {
			writeTables(cmd.OutOrStdout())
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(tablesCmd)
}
