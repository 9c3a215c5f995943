// FILE: pkg/generator/archive.go
// Streams the assembled project tree into a zip archive
package generator

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FallbackRootToken names the archive root when the order has no template.
const FallbackRootToken = "saas-starter"

// defaultIgnoreDirs are skipped by name at any depth: build output,
// dependency caches and version-control metadata never ship to customers.
// _features holds the artifact fragment sources and is not part of the
// shipped tree either.
var defaultIgnoreDirs = []string{
	"node_modules", ".git", ".svn", ".hg",
	"dist", "build", ".next", "coverage", ".turbo",
	"vendor", "tmp",
	"_features",
}

// generatedFiles are produced by the merger/doc generators and therefore
// skipped during the base-tree walk, whatever the base template contains.
var generatedFiles = map[string]bool{
	baseManifestFile: true,
	baseSchemaFile:   true,
	baseEnvFile:      true,
	"README.md":      true,
	"LICENSE.md":     true,
	DescriptorFile:   true,
}

// Assembler walks the base template, applies feature file overlays and writes
// every entry of the resulting tree into a zip stream. Writes to the sink are
// blocking, so the sink's backpressure bounds our memory use; nothing is
// buffered beyond one file's worth of copy buffer.
type Assembler struct {
	baseDir    string
	ignoreDirs map[string]bool
}

func NewAssembler(baseDir string) *Assembler {
	ignore := make(map[string]bool, len(defaultIgnoreDirs))
	for _, dir := range defaultIgnoreDirs {
		ignore[dir] = true
	}
	return &Assembler{baseDir: baseDir, ignoreDirs: ignore}
}

// ArchiveRootName derives the archive's root folder deterministically from
// the template slug (or the fallback token) and the tier label.
func ArchiveRootName(templateSlug, tier string) string {
	if templateSlug == "" {
		templateSlug = FallbackRootToken
	}
	if tier == "" {
		return templateSlug
	}
	return templateSlug + "-" + tier
}

// Stream writes the complete archive to w. Any I/O failure, including the
// sink rejecting a write, aborts the operation; a partial archive is never a
// valid output and the caller must discard whatever was written.
//
// overlays maps destination path -> absolute source path (feature file
// mappings, already resolved against the base template root). generated maps
// destination path -> rendered content (merged manifest/schema/env + docs).
func (a *Assembler) Stream(ctx context.Context, w io.Writer, rootName string, overlays map[string]string, generated map[string][]byte) error {
	zw := zip.NewWriter(w)

	walkErr := filepath.WalkDir(a.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != a.baseDir && a.ignoreDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(a.baseDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Overridden by a feature overlay or replaced by generated content.
		if _, overridden := overlays[rel]; overridden {
			return nil
		}
		if generatedFiles[rel] {
			return nil
		}

		return a.copyEntry(zw, rootName+"/"+rel, path)
	})
	if walkErr != nil {
		zw.Close()
		return fmt.Errorf("assemble archive: %w", walkErr)
	}

	for _, dest := range sortedKeys(overlays) {
		// A mapping may target a path the merger/doc generators own; the
		// rendered content is authoritative there, not the raw fragment.
		if _, replaced := generated[dest]; replaced {
			continue
		}
		if err := a.copyEntry(zw, rootName+"/"+dest, overlays[dest]); err != nil {
			zw.Close()
			return fmt.Errorf("assemble archive: overlay %s: %w", dest, err)
		}
	}

	for _, dest := range sortedKeysBytes(generated) {
		entry, err := zw.Create(rootName + "/" + dest)
		if err != nil {
			zw.Close()
			return fmt.Errorf("assemble archive: %s: %w", dest, err)
		}
		if _, err := entry.Write(generated[dest]); err != nil {
			zw.Close()
			return fmt.Errorf("assemble archive: %s: %w", dest, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("assemble archive: finalize: %w", err)
	}
	return nil
}

func (a *Assembler) copyEntry(zw *zip.Writer, name, sourcePath string) error {
	f, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, f)
	return err
}

// ResolveOverlays flattens the feature set's file mappings into a destination
// -> source-path map. Later features win when two map the same destination,
// matching the manifest merge's last-wins rule.
func (a *Assembler) ResolveOverlays(set *ResolvedFeatureSet) map[string]string {
	overlays := make(map[string]string)
	for _, feature := range set.Features {
		for _, mapping := range feature.FileMappings {
			dest := strings.TrimPrefix(filepath.ToSlash(mapping.Destination), "/")
			overlays[dest] = filepath.Join(a.baseDir, mapping.Source)
		}
	}
	return overlays
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysBytes(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
