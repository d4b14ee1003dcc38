package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/colt-lang/coltgo/internal/bytecode"
	"github.com/colt-lang/coltgo/internal/diag"
	"github.com/colt-lang/coltgo/internal/session"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var (
	flagDiagFormat string
	flagSidecar    string
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Lex a Colt source file and emit a ColtiExecutable container",
	Long: `Lex a Colt source file, report diagnostics, and emit a
ColtiExecutable container holding the scanned token stream (this
repository implements lexing and container serialization only; there is
no code generator beyond the container format, per the project's
non-goals).

--diagnostics-format=json switches the diagnostic stream from the
console renderer to a JSON array on stdout, each element built with
sjson so the container format's own field-at-a-time philosophy extends
to the CLI's own output.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&flagDiagFormat, "diagnostics-format", "console", `diagnostic output format: "console" or "json"`)
	buildCmd.Flags().StringVar(&flagSidecar, "sidecar", "", "path to a JSON build-cache sidecar to update after a successful build")
}

// jsonReporter accumulates reports as a JSON array built incrementally
// with sjson, one SetBytes call per report field rather than a
// marshal-the-whole-slice round trip.
type jsonReporter struct {
	doc []byte
}

func newJSONReporter() *jsonReporter {
	return &jsonReporter{doc: []byte("[]")}
}

func (j *jsonReporter) append(sev diag.Severity, text string, info *diag.SourceInfo) {
	idx := "-1"
	doc, _ := sjson.SetBytes(j.doc, idx+".severity", sev.String())
	doc, _ = sjson.SetBytes(doc, idx+".message", text)
	if info != nil {
		doc, _ = sjson.SetBytes(doc, idx+".line", info.Line)
		doc, _ = sjson.SetBytes(doc, idx+".column", info.Column)
	}
	j.doc = doc
}

func (j *jsonReporter) Message(text string, info *diag.SourceInfo, _ *diag.ReportNumber) {
	j.append(diag.SeverityMessage, text, info)
}
func (j *jsonReporter) Warn(text string, info *diag.SourceInfo, _ *diag.ReportNumber) {
	j.append(diag.SeverityWarn, text, info)
}
func (j *jsonReporter) Error(text string, info *diag.SourceInfo, _ *diag.ReportNumber) {
	j.append(diag.SeverityError, text, info)
}

func runBuild(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		fatalUsage("coltc build: %v", err)
	}

	var jr *jsonReporter
	var report diag.Reporter
	switch flagDiagFormat {
	case "json":
		jr = newJSONReporter()
		report = jr
	case "console", "":
		report = buildReporter()
	default:
		return fmt.Errorf("coltc build: unknown --diagnostics-format %q", flagDiagFormat)
	}

	sess := session.New(session.WithReporter(report))
	lexErrs := sess.Lex(string(content))

	if jr != nil {
		fmt.Println(string(jr.doc))
	}

	if len(lexErrs) > 0 {
		return fmt.Errorf("coltc build: %d lexer error(s)", len(lexErrs))
	}

	exe := bytecode.NewExecutable(bytecode.Version{Major: 0, Minor: 1, Patch: 0}, nil)
	if err := exe.AddSection("TOKS", encodeTokens(sess)); err != nil {
		return fmt.Errorf("coltc build: %w", err)
	}

	out := flagOutput
	if out == "" {
		out = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".colti"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("coltc build: %w", err)
	}
	defer f.Close()
	if _, err := exe.WriteTo(f); err != nil {
		return fmt.Errorf("coltc build: %w", err)
	}

	if flagSidecar != "" {
		if err := recordSidecar(flagSidecar, filename, string(content), out); err != nil {
			return fmt.Errorf("coltc build: %w", err)
		}
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

// encodeTokens renders the session's token stream as a newline-separated
// "type literal line col" section body: enough for the disassembler and
// build-cache tooling to round-trip what was scanned without reaching
// back into the lexer's in-memory TokenBuffer.
func encodeTokens(sess *session.Session) []byte {
	tb := sess.Tokens()
	var b strings.Builder
	for i := 0; i < tb.Len(); i++ {
		tok := tb.At(i)
		fmt.Fprintf(&b, "%s\t%q\t%d\t%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
	}
	return []byte(b.String())
}
