package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/principia/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// defaultTolerance applies to gate blocks that omit a tolerance.
const defaultTolerance = 1e-3

// Loader parses seed files into a Model.
type Loader struct{}

// NewLoader creates a seed file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of a seed file.
type fileRoot struct {
	Constants []*constantsBlock `hcl:"constants,block"`
	Gates     []*gateBlock      `hcl:"gate,block"`
}

type constantsBlock struct {
	Namespace string   `hcl:"namespace,label"`
	Body      hcl.Body `hcl:",remain"`
}

type gateBlock struct {
	Name      string   `hcl:"name,label"`
	Path      string   `hcl:"path"`
	Reference float64  `hcl:"reference"`
	Tolerance *float64 `hcl:"tolerance,optional"`
}

// Load parses every .hcl file reachable from the given paths and merges the
// declared constants and gates into one Model. A path may be a single file
// or a directory walked recursively. Parse and decode failures are fatal; a
// seed file the pipeline cannot read fully is not a recoverable condition.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := findSeedFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl seed files found under %v", paths)
	}
	logger.Debug("Discovered seed files.", "count", len(files))

	model := &Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing seed file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("decoding seed file %s: %w", file, diags)
		}

		for _, block := range root.Constants {
			constants, err := l.translateConstants(block, file)
			if err != nil {
				return nil, err
			}
			model.Constants = append(model.Constants, constants...)
		}
		for _, block := range root.Gates {
			gate, err := l.translateGate(block, file)
			if err != nil {
				return nil, err
			}
			model.Gates = append(model.Gates, gate)
		}
	}

	sortConstants(model.Constants)
	logger.Debug("Seed loading complete.", "constants", len(model.Constants), "gates", len(model.Gates))
	return model, nil
}

// translateConstants turns one constants block into Constant records. Every
// attribute except the reserved "source" becomes a "<namespace>.<name>"
// parameter; values must be literal numbers or booleans.
func (l *Loader) translateConstants(block *constantsBlock, file string) ([]Constant, error) {
	if block.Namespace == "" {
		return nil, fmt.Errorf("%s: constants block with empty namespace label", file)
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: constants %q: %w", file, block.Namespace, diags)
	}

	var source string
	var constants []Constant
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: constants %q: attribute %q must be a literal: %w",
				file, block.Namespace, name, diags)
		}

		if name == "source" {
			if value.Type() != cty.String {
				return nil, fmt.Errorf("%s: constants %q: source must be a string", file, block.Namespace)
			}
			source = value.AsString()
			continue
		}

		if value.Type() != cty.Number && value.Type() != cty.Bool {
			return nil, fmt.Errorf("%s: constants %q: attribute %q must be a number or bool, got %s",
				file, block.Namespace, name, value.Type().FriendlyName())
		}
		constants = append(constants, Constant{
			Path:  block.Namespace + "." + name,
			Value: value,
		})
	}

	if source == "" {
		return nil, fmt.Errorf("%s: constants %q: missing required source attribute", file, block.Namespace)
	}
	for i := range constants {
		constants[i].Source = source
	}
	return constants, nil
}

func (l *Loader) translateGate(block *gateBlock, file string) (Gate, error) {
	if block.Path == "" {
		return Gate{}, fmt.Errorf("%s: gate %q: path must not be empty", file, block.Name)
	}
	// A pointer distinguishes an omitted tolerance from an explicit one, so
	// a declared zero (exact match required) is honored rather than defaulted.
	tolerance := defaultTolerance
	if block.Tolerance != nil {
		tolerance = *block.Tolerance
	}
	if tolerance < 0 {
		return Gate{}, fmt.Errorf("%s: gate %q: tolerance must not be negative", file, block.Name)
	}
	return Gate{
		Name:      block.Name,
		Path:      block.Path,
		Reference: block.Reference,
		Tolerance: tolerance,
	}, nil
}

// findSeedFiles walks all given paths and returns a deduplicated list of
// .hcl files. A missing path is an error: unlike optional module manifests,
// the constants a pipeline was pointed at must exist.
func findSeedFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("accessing seed path %s: %w", path, err)
		}

		if !info.IsDir() {
			if _, dup := seen[path]; !dup {
				files = append(files, path)
				seen[path] = struct{}{}
			}
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				if _, dup := seen[p]; !dup {
					files = append(files, p)
					seen[p] = struct{}{}
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
