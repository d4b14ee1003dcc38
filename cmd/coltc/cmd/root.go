package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/colt-lang/coltgo/internal/diag"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	flagNoColor  bool
	flagNoWait   bool
	flagVersion  bool
	flagSpace    int
	flagMaxError string
	flagMaxWarn  string
	flagMaxMsg   string
	flagOutput   string
	flagManifest string
)

var rootCmd = &cobra.Command{
	Use:   "coltc",
	Short: "Colt compiler front-end",
	Long: `coltc drives the Colt compiler front-end from the command line: it
lexes source files, writes the scanned tokens into a ColtiExecutable
container, disassembles such containers, and edits coltproject.yaml.

Lexing goes through internal/session.Session; containers are written and
read through internal/bytecode.`,
	SilenceUsage:      true,
	PersistentPreRunE: applyManifestDefaults,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVersion {
			printVersion()
			return nil
		}
		return cmd.Help()
	},
}

// applyManifestDefaults reads -manifest, if given, and fills in any of
// -max-error/-max-warn/-max-msg/-o the user did not set explicitly on
// the command line, so a coltproject.yaml can supply the same defaults
// the flags would. Flags always win over the manifest.
func applyManifestDefaults(cmd *cobra.Command, args []string) error {
	if flagManifest == "" {
		return nil
	}
	m, err := loadManifest(flagManifest)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("max-error") && m.MaxError != "" {
		flagMaxError = m.MaxError
	}
	if !flags.Changed("max-warn") && m.MaxWarn != "" {
		flagMaxWarn = m.MaxWarn
	}
	if !flags.Changed("max-msg") && m.MaxMsg != "" {
		flagMaxMsg = m.MaxMsg
	}
	if !flags.Changed("output") && m.Output != "" {
		flagOutput = m.Output
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "nocolor", false, "disable ANSI colouring in diagnostics")
	rootCmd.PersistentFlags().BoolVar(&flagNoWait, "nowait", false, "do not pause before exit")
	rootCmd.PersistentFlags().StringVar(&flagMaxError, "max-error", "32", `cap errors reported ("None" for unlimited)`)
	rootCmd.PersistentFlags().StringVar(&flagMaxWarn, "max-warn", "64", `cap warnings reported ("None" for unlimited)`)
	rootCmd.PersistentFlags().StringVar(&flagMaxMsg, "max-msg", "128", `cap messages reported ("None" for unlimited)`)
	rootCmd.PersistentFlags().IntVar(&flagSpace, "space", 0, "transpile indentation width, 0-255")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output file path")
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "", "coltproject.yaml to read default flag values from")
	rootCmd.Flags().BoolVarP(&flagVersion, "version", "v", false, "print version and exit")
}

func printVersion() {
	fmt.Printf("coltc version %s\nCommit: %s\nBuilt:  %s\n", Version, GitCommit, BuildDate)
}

// parseLimit turns a -max-error/-max-warn/-max-msg flag value into a Limiter
// budget: "None" means diag.Unlimited, 0 is invalid and falls back to def,
// any other non-negative integer is used as-is.
func parseLimit(raw string, def int) int {
	if raw == "None" {
		return diag.Unlimited
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n == 0 {
		return def
	}
	return n
}

// buildReporter assembles the Console/Limiter decorator stack the CLI layer
// wires in front of a Session, honoring -nocolor and the -max-* budgets.
func buildReporter() diag.Reporter {
	console := diag.Console{Writer: os.Stdout, Color: !flagNoColor}
	return diag.NewLimiter(console,
		parseLimit(flagMaxError, 32),
		parseLimit(flagMaxWarn, 64),
		parseLimit(flagMaxMsg, 128),
	)
}

// fatalUsage reports a process-fatal usage error that occurs before any
// Session exists; log/fmt belong to this outermost CLI layer only,
// never internal/.
func fatalUsage(format string, args ...any) {
	log.Fatalf(format, args...)
}
