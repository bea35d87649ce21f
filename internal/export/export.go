// Package export runs generators over a settings tree and writes their
// output to disk. A failing generator never aborts the batch; its error is
// carried in the per-generator result.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/azmeuk/settings-export/internal/generators"
	"github.com/azmeuk/settings-export/internal/output"
	"github.com/azmeuk/settings-export/internal/schema"
)

// Operation is a file system write that can be validated before running.
//
// Validate checks whether the operation would succeed and may have
// idempotent side effects (creating parent directories). Execute performs
// the write and should only run after Validate succeeds.
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp writes content to a path, creating parent directories.
// Unchanged reports whether the file already holds the exact content, in
// which case Execute is a no-op and the file keeps its mtime.
type WriteFileOp struct {
	Path    string
	Content []byte
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	return nil
}

// Unchanged reports whether the file already contains op.Content.
func (op *WriteFileOp) Unchanged() bool {
	existing, err := os.ReadFile(op.Path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, op.Content)
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if op.Unchanged() {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, 0644)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Write %s (%d bytes)", op.Path, len(op.Content))
}

// Result reports one generator's run: the files it updated, the files it
// left untouched, and its error if it failed.
type Result struct {
	Name    string
	Paths   []string
	Skipped []string
	Err     error
}

// Exporter fans a settings tree out to a set of generators.
type Exporter struct {
	// Root resolves relative generator paths. Empty means the current
	// directory.
	Root       string
	Generators []generators.Generator
}

// Run renders every generator over the nodes and writes its files. Errors
// are collected per generator; the batch always completes.
func (e *Exporter) Run(ctx context.Context, nodes ...*schema.SettingsInfo) []Result {
	results := make([]Result, 0, len(e.Generators))
	for _, g := range e.Generators {
		results = append(results, e.runOne(ctx, g, nodes))
	}
	return results
}

func (e *Exporter) runOne(ctx context.Context, g generators.Generator, nodes []*schema.SettingsInfo) Result {
	res := Result{Name: g.Name()}

	text, err := g.Generate(nodes...)
	if err != nil {
		res.Err = fmt.Errorf("generator %s: %w", g.Name(), err)
		output.Warn(res.Err.Error())
		return res
	}

	for _, p := range g.Paths() {
		path := e.resolve(p)
		op := &WriteFileOp{Path: path, Content: []byte(text)}
		if err := op.Validate(ctx); err != nil {
			res.Err = fmt.Errorf("generator %s: %w", g.Name(), err)
			output.Warn(res.Err.Error())
			return res
		}
		if op.Unchanged() {
			res.Skipped = append(res.Skipped, path)
			output.Verbose("Unchanged: " + path)
			continue
		}
		if err := op.Execute(ctx); err != nil {
			res.Err = fmt.Errorf("generator %s: %w", g.Name(), err)
			output.Warn(res.Err.Error())
			return res
		}
		res.Paths = append(res.Paths, path)
		output.Verbose(op.Description())
	}
	return res
}

func (e *Exporter) resolve(p string) string {
	if filepath.IsAbs(p) || e.Root == "" {
		return p
	}
	return filepath.Join(e.Root, p)
}

// Updated aggregates the written paths of all results, in order.
func Updated(results []Result) []string {
	var paths []string
	for _, r := range results {
		paths = append(paths, r.Paths...)
	}
	return paths
}

// FirstError returns the first generator error, or nil when all succeeded.
func FirstError(results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
