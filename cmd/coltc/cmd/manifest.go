package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// ProjectManifest is the coltproject.yaml shape: a file list, an output
// path, and the default diagnostic budgets the -max-error/-max-warn/
// -max-msg flags would otherwise populate. Reading it once at CLI start
// produces the same values the flags would; flags always win.
type ProjectManifest struct {
	Sources  []string `yaml:"sources"`
	Output   string   `yaml:"output"`
	MaxError string   `yaml:"max_error"`
	MaxWarn  string   `yaml:"max_warn"`
	MaxMsg   string   `yaml:"max_msg"`
}

func loadManifest(path string) (*ProjectManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	var m ProjectManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}

func saveManifest(path string, m *ProjectManifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect or edit coltproject.yaml",
}

var manifestPath string

var manifestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved project manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadManifest(manifestPath)
		if err != nil {
			return err
		}
		fmt.Printf("sources: %v\n", m.Sources)
		fmt.Printf("output:  %s\n", m.Output)
		fmt.Printf("max_error: %s  max_warn: %s  max_msg: %s\n", m.MaxError, m.MaxWarn, m.MaxMsg)
		return nil
	},
}

var manifestSetCmd = &cobra.Command{
	Use:   "set key value",
	Short: "Set a single coltproject.yaml field",
	Long: `Set one field of coltproject.yaml and rewrite the file. Valid keys
are output, max_error, max_warn, max_msg, and sources (comma-separated).`,
	Args: cobra.ExactArgs(2),
	RunE: runManifestSet,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.PersistentFlags().StringVar(&manifestPath, "file", "coltproject.yaml", "path to the project manifest")
	manifestCmd.AddCommand(manifestShowCmd)
	manifestCmd.AddCommand(manifestSetCmd)
}

func runManifestSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	m, err := loadManifest(manifestPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		m = &ProjectManifest{}
	}

	switch key {
	case "output":
		m.Output = value
	case "max_error":
		m.MaxError = value
	case "max_warn":
		m.MaxWarn = value
	case "max_msg":
		m.MaxMsg = value
	case "sources":
		m.Sources = splitCSV(value)
	default:
		return fmt.Errorf("manifest set: unknown key %q", key)
	}

	return saveManifest(manifestPath, m)
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
