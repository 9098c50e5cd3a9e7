package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anchorize/anchorize/pkg/compiler"
	"github.com/anchorize/anchorize/pkg/config"
	"github.com/anchorize/anchorize/pkg/logging"
)

var (
	compileOutput     string
	compileStrict     bool
	compileConfigPath string
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile one source file to Anchor Rust source",
	Long: `compile runs the pipeline once: lex/parse the input file,
extract its program class and account interfaces, build the
instruction and account model, emit Rust source, and write it to
stdout or the file named by --output.

Examples:
  anchorize compile counter.ts
  anchorize compile counter.ts -o programs/counter/src/lib.rs
  anchorize compile counter.ts --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVar(&compileStrict, "strict", false, "abort instead of emitting a best-effort result for a method with a skipped statement")
	compileCmd.Flags().StringVar(&compileConfigPath, "config", ".anchorize.yaml", "path to the ambient compiler config")
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := config.Load(compileConfigPath)
	if err != nil {
		return err
	}
	strict := cfg.Strict || compileStrict

	result, err := compiler.Compile(string(source), compiler.Options{Strict: strict, AccountKindOverrides: cfg.AccountKindOverrides})
	if err != nil {
		return fmt.Errorf("compiling %s: %w", path, err)
	}

	log := logging.Get()
	for _, w := range result.Warnings {
		log.Warn().Str("file", path).Msg(w)
	}
	for _, s := range result.SkippedMethods {
		log.Warn().Str("file", path).Str("method", s.Selector).Msg("skipped: " + s.Reason)
	}
	log.Info().Str("file", path).Str("program", result.ProgramName).Msg("compiled")

	if compileOutput == "" {
		fmt.Print(result.Code)
		return nil
	}
	if err := os.WriteFile(compileOutput, []byte(result.Code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", compileOutput, err)
	}
	return nil
}
