package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/specialistvlad/gridplan/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL problem loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges the blocks into one
// model. Exactly one horizon block must exist across all files; task ids
// must be unique.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{}
	parser := hclparse.NewParser()
	horizonFile := ""
	taskFiles := make(map[string]string)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Horizon != nil {
			if horizonFile != "" {
				return nil, fmt.Errorf("duplicate horizon block in %s, already defined in %s", file, horizonFile)
			}
			horizonFile = file
			model.Horizon = translateHorizon(root.Horizon)
		}
		if root.Planner != nil {
			translatePlanner(root.Planner, &model.Planner)
		}

		for _, t := range root.Tasks {
			if prev, ok := taskFiles[t.ID]; ok {
				return nil, fmt.Errorf("duplicate task '%s' in %s, already defined in %s", t.ID, file, prev)
			}
			taskFiles[t.ID] = file

			task, err := translateTask(t, file)
			if err != nil {
				return nil, err
			}
			model.Tasks = append(model.Tasks, task)
		}
		for _, d := range root.Dependencies {
			model.Dependencies = append(model.Dependencies, translateDependency(d, file))
		}
	}

	if model.Horizon == nil {
		return nil, fmt.Errorf("no horizon block found in %v", paths)
	}

	logger.Debug("HCL loading complete.", "tasks", len(model.Tasks), "dependencies", len(model.Dependencies), "unit", model.Horizon.Unit)
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a sorted, de-duplicated
// list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}
