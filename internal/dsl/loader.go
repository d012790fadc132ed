package dsl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/appforge/appforge/internal/ctxlog"
	"github.com/appforge/appforge/internal/fsutil"
	"github.com/appforge/appforge/internal/model"
)

// ModelFileExtension is the file suffix recognized when a model path is a directory.
const ModelFileExtension = ".afm"

// ImportOptions carries call-site defaults merged into imported applications,
// plus flags forwarded from the CLI surface.
type ImportOptions struct {
	DatabaseType      string
	ApplicationType   string
	ApplicationName   string
	GeneratorVersion  string
	SkipFiltering     bool
	CreationTimestamp int64
}

// Importer converts raw model text or files into an ImportState.
type Importer struct {
	opts ImportOptions
}

// NewImporter creates an importer with the given call-site options.
func NewImporter(opts ImportOptions) *Importer {
	return &Importer{opts: opts}
}

// FromFiles imports a model from the given file or directory paths. Directory
// paths are searched recursively for model files.
func (i *Importer) FromFiles(ctx context.Context, paths ...string) (*model.ImportState, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := i.findModelFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s model files found in %v", ModelFileExtension, paths)
	}
	logger.Debug("Discovered model files.", "count", len(files))

	parser := hclparse.NewParser()
	var roots []*fileRoot
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse model file %s: %w", file, diags)
		}
		root, err := decodeRoot(hclFile.Body, file)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}

	return i.translate(ctx, roots)
}

// FromContent imports a model from inline DSL text.
func (i *Importer) FromContent(ctx context.Context, content string) (*model.ImportState, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL([]byte(content), "inline"+ModelFileExtension)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse inline model: %w", diags)
	}
	root, err := decodeRoot(hclFile.Body, "inline model")
	if err != nil {
		return nil, err
	}
	return i.translate(ctx, []*fileRoot{root})
}

// decodeRoot decodes every supported top-level block from a file body.
func decodeRoot(body hcl.Body, name string) (*fileRoot, error) {
	var root fileRoot
	diags := gohcl.DecodeBody(body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", name, diags)
	}
	return &root, nil
}

// findModelFiles walks all given paths and returns a flat list of model files.
func (i *Importer) findModelFiles(paths []string) ([]string, error) {
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
			return nil, fmt.Errorf("error accessing model path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ModelFileExtension)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
		} else if filepath.Ext(path) == ModelFileExtension {
			add(path)
		} else {
			return nil, fmt.Errorf("model file %s does not have the %s extension", path, ModelFileExtension)
		}
	}
	return allFiles, nil
}
