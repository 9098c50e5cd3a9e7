package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anchorize/anchorize/pkg/compiler"
	"github.com/anchorize/anchorize/pkg/logging"
)

var (
	buildProgramsDir   string
	buildTsDir         string
	buildConcurrency   int
	buildDownstreamCmd string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile every subproject under programs/ and run the downstream build",
	Long: `build walks programs/*/Cargo.toml, resolves each subproject's
TypeScript source under ts-programs/src/<camelCase>.ts, compiles them
concurrently (bounded by --concurrency), and — only if every
compilation succeeds — shells out to the downstream framework's build
command.

This driver sits outside the single-file compiler's concurrency model:
each compilation is independent and self-contained, so running them in
parallel never shares state across files.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildProgramsDir, "programs-dir", "programs", "directory containing one subdirectory per on-chain program")
	buildCmd.Flags().StringVar(&buildTsDir, "ts-dir", "ts-programs/src", "directory containing the TypeScript source for each program")
	buildCmd.Flags().IntVar(&buildConcurrency, "concurrency", 4, "maximum number of concurrent compilations")
	buildCmd.Flags().StringVar(&buildDownstreamCmd, "downstream-cmd", "anchor build", "downstream framework build command to run after a successful compile")
}

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

func runBuild(cmd *cobra.Command, args []string) error {
	log := logging.Get()

	entries, err := os.ReadDir(buildProgramsDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", buildProgramsDir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var manifest cargoManifest
		manifestPath := filepath.Join(buildProgramsDir, e.Name(), "Cargo.toml")
		if _, err := toml.DecodeFile(manifestPath, &manifest); err != nil {
			log.Warn().Str("dir", e.Name()).Err(err).Msg("skipping: no readable Cargo.toml")
			continue
		}
		names = append(names, manifest.Package.Name)
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(buildConcurrency)

	var mu sync.Mutex
	var compileErrs *multierror.Error

	for _, name := range names {
		name := name
		g.Go(func() error {
			tsPath := filepath.Join(buildTsDir, toCamelCase(name)+".ts")
			source, err := os.ReadFile(tsPath)
			if err != nil {
				mu.Lock()
				compileErrs = multierror.Append(compileErrs, fmt.Errorf("%s: %w", tsPath, err))
				mu.Unlock()
				return nil
			}

			result, err := compiler.Compile(string(source), compiler.Options{})
			if err != nil {
				mu.Lock()
				compileErrs = multierror.Append(compileErrs, fmt.Errorf("%s: %w", tsPath, err))
				mu.Unlock()
				return nil
			}

			outPath := filepath.Join(buildProgramsDir, name, "src", "lib.rs")
			if err := os.WriteFile(outPath, []byte(result.Code), 0o644); err != nil {
				mu.Lock()
				compileErrs = multierror.Append(compileErrs, fmt.Errorf("writing %s: %w", outPath, err))
				mu.Unlock()
				return nil
			}

			log.Info().Str("program", name).Str("output", outPath).Msg("compiled")
			return nil
		})
	}
	_ = g.Wait()

	if compileErrs.ErrorOrNil() != nil {
		return compileErrs.ErrorOrNil()
	}

	parts := strings.Fields(buildDownstreamCmd)
	if len(parts) == 0 {
		return fmt.Errorf("build: empty --downstream-cmd")
	}
	downstream := exec.Command(parts[0], parts[1:]...)
	downstream.Stdout = os.Stdout
	downstream.Stderr = os.Stderr
	return downstream.Run()
}

func toCamelCase(kebabOrSnake string) string {
	parts := strings.FieldsFunc(kebabOrSnake, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) == 0 {
		return kebabOrSnake
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
