// Package compiler is the pipeline facade for spec.md §2: wiring
// lexer -> parser -> extract -> build -> emit -> reorder into a
// single file-in/text-out call, grounded on chazu-procyon's
// cmd/procyon/main.go (read input, run the pipeline, collect
// warnings/skipped methods, return a Result). Unlike the teacher's
// main.go, this package never touches os.Stdin/os.Stdout or prints —
// it only returns a Result or an error, so cmd/anchorize is the sole
// place that logs or writes output, per SPEC_FULL.md §7's stated
// separation.
package compiler

import (
	"fmt"

	"github.com/anchorize/anchorize/pkg/build"
	"github.com/anchorize/anchorize/pkg/emit"
	"github.com/anchorize/anchorize/pkg/extract"
	"github.com/anchorize/anchorize/pkg/parser"
	"github.com/anchorize/anchorize/pkg/reorder"
)

// Result carries the compiled Rust source alongside the non-fatal
// diagnostics the teacher's own Result{Code, Warnings, SkippedMethods}
// shape reports.
type Result struct {
	Code           string
	ProgramName    string
	Warnings       []string
	SkippedMethods []build.SkippedMethod
}

// Options configures a single compilation. Strict mirrors the
// teacher's own --strict flag: when set, any skipped method aborts
// the compile instead of emitting a best-effort result.
// AccountKindOverrides is passed straight through from the workspace's
// `.anchorize.yaml`; it lets a dialect-extension type name resolve to
// one of the seven built-in account kinds.
type Options struct {
	Strict               bool
	AccountKindOverrides map[string]string
}

// Compile runs the full pipeline over one source file's text.
func Compile(source string, opts Options) (*Result, error) {
	file, err := parser.ParseFile(source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	ex, err := extract.Extract(file)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	pm, diag, err := build.Populate(ex, opts.AccountKindOverrides)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	if opts.Strict && len(diag.SkippedMethods) > 0 {
		return nil, fmt.Errorf("strict mode: %d method(s) could not be fully compiled: %s",
			len(diag.SkippedMethods), diag.SkippedMethods[0].Selector)
	}

	rendered, err := emit.Render(pm)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}

	reordered, err := reorder.Apply(rendered)
	if err != nil {
		return nil, fmt.Errorf("reorder: %w", err)
	}

	return &Result{
		Code:           reordered,
		ProgramName:    pm.Name,
		Warnings:       diag.Warnings,
		SkippedMethods: diag.SkippedMethods,
	}, nil
}
