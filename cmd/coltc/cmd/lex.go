package cmd

import (
	"fmt"
	"os"

	"github.com/colt-lang/coltgo/internal/session"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Colt source file and print the resulting tokens",
	Long: `Tokenize a Colt program and print the resulting tokens, one per line,
in the form [TYPE] "literal" @line:col.

Examples:
  coltc lex script.colt
  coltc lex --max-error None script.colt`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		fatalUsage("coltc lex: %v", err)
	}

	sess := session.New(session.WithReporter(buildReporter()))
	errs := sess.Lex(string(content))

	tb := sess.Tokens()
	for i := 0; i < tb.Len(); i++ {
		tok := tb.At(i)
		fmt.Printf("[%-12s] %q @%d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
	}

	if len(errs) > 0 {
		return fmt.Errorf("coltc lex: %d lexer error(s)", len(errs))
	}
	return nil
}
