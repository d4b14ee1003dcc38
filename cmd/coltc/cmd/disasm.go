package cmd

import (
	"fmt"
	"os"

	"github.com/colt-lang/coltgo/internal/bytecode"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Decode and print a ColtiExecutable container",
	Long: `Read a .colti container and print its header, its section index,
and a disassembly listing of the section named CODE.`,
	Args: cobra.ExactArgs(1),
	RunE: runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func runDisasm(cmd *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		fatalUsage("coltc disasm: %v", err)
	}

	exe, ok := bytecode.Decode(data)
	if !ok {
		return fmt.Errorf("coltc disasm: %s is not a valid ColtiExecutable", filename)
	}

	fmt.Printf("version %s\n", exe.Header.Version)
	if exe.Header.HasTimestamp {
		ts := exe.Header.Timestamp
		fmt.Printf("built %04d-%02d-%02d %02d:%02d\n", ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute)
	}
	fmt.Printf("%d section(s)\n\n", exe.Header.SectionCount)

	for _, sec := range exe.Sections {
		fmt.Printf("section %q (%d bytes)\n", sec.Name, len(sec.Content))
		if sec.Name == "CODE" {
			fmt.Println(bytecode.DisassembleSection(sec))
		}
		fmt.Println()
	}
	return nil
}
