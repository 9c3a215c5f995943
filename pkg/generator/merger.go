// FILE: pkg/generator/merger.go
// Merges feature artifacts onto the base template: manifest, schema, env vars
package generator

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"launchforge-be/internal/entity"
)

// Conventional artifact locations inside the base template root.
const (
	baseManifestFile = "package.json"
	baseSchemaFile   = "prisma/schema.prisma"
	baseEnvFile      = ".env.example"
)

// declRe matches Prisma top-level model/enum declarations.
var declRe = regexp.MustCompile(`(?m)^\s*(model|enum)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)

// Merger combines the artifact contributions of a resolved feature set with
// the base template's manifest, schema and env declarations.
type Merger struct {
	baseDir string
}

func NewMerger(baseDir string) *Merger {
	return &Merger{baseDir: baseDir}
}

// MergeManifest starts from the base package.json and folds in every resolved
// feature's package dependencies. Dedup is by package name; when two features
// pin different versions of the same package, the later feature in resolution
// order wins. A missing or unparsable base manifest is fatal.
func (m *Merger) MergeManifest(set *ResolvedFeatureSet) (*ProjectManifest, error) {
	raw, err := os.ReadFile(filepath.Join(m.baseDir, baseManifestFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBaseManifest, err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrBaseManifest, err)
	}

	manifest := &ProjectManifest{
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		rest:            top,
	}
	if deps, ok := top["dependencies"]; ok {
		if err := json.Unmarshal(deps, &manifest.Dependencies); err != nil {
			return nil, fmt.Errorf("%w: invalid dependencies block: %v", ErrBaseManifest, err)
		}
		delete(top, "dependencies")
	}
	if devDeps, ok := top["devDependencies"]; ok {
		if err := json.Unmarshal(devDeps, &manifest.DevDependencies); err != nil {
			return nil, fmt.Errorf("%w: invalid devDependencies block: %v", ErrBaseManifest, err)
		}
		delete(top, "devDependencies")
	}

	for _, feature := range set.Features {
		for _, dep := range feature.PackageDependencies {
			if dep.Dev {
				manifest.DevDependencies[dep.Name] = dep.Version
			} else {
				manifest.Dependencies[dep.Name] = dep.Version
			}
		}
	}

	return manifest, nil
}

// MergeSchema starts from the base schema.prisma (datasource/generator
// preamble preserved verbatim) and appends each feature's named fragments.
// Duplicate model or enum names are resolved first-wins: redefining a model
// is structurally unsafe, so later fragments that collide are dropped whole.
// A missing base schema is fatal.
func (m *Merger) MergeSchema(set *ResolvedFeatureSet) (*MergedSchema, error) {
	raw, err := os.ReadFile(filepath.Join(m.baseDir, baseSchemaFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBaseSchema, err)
	}

	text := strings.TrimRight(string(raw), "\n")
	declared := make(map[string]bool)
	var names []string
	for _, match := range declRe.FindAllStringSubmatch(text, -1) {
		declared[match[2]] = true
		names = append(names, match[2])
	}

	var sb strings.Builder
	sb.WriteString(text)

	for _, feature := range set.Features {
		for _, mapping := range feature.SchemaMappings {
			if declared[mapping.Model] {
				continue
			}
			fragment, err := os.ReadFile(filepath.Join(m.baseDir, mapping.Source))
			if err != nil {
				return nil, fmt.Errorf("read schema fragment %s (%s): %w", mapping.Model, mapping.Source, err)
			}

			// A fragment may declare helper enums alongside its model. If any
			// of its declarations collides, skip the fragment entirely.
			matches := declRe.FindAllStringSubmatch(string(fragment), -1)
			collision := false
			for _, match := range matches {
				if declared[match[2]] {
					collision = true
					break
				}
			}
			if collision {
				continue
			}

			sb.WriteString("\n\n")
			sb.WriteString(strings.TrimRight(string(fragment), "\n"))
			declared[mapping.Model] = true
			for _, match := range matches {
				if match[2] != mapping.Model && !declared[match[2]] {
					declared[match[2]] = true
					names = append(names, match[2])
				}
			}
			names = append(names, mapping.Model)
		}
	}
	sb.WriteString("\n")

	return &MergedSchema{Text: sb.String(), DeclaredNames: names}, nil
}

// MergeEnv unions the base template's variables with every resolved feature's
// declarations, deduplicated by key. The required flag ORs across all
// declarations; the default comes from the first declaration that supplies
// one. A missing base env template is not fatal; not every template ships one.
func (m *Merger) MergeEnv(set *ResolvedFeatureSet) (*MergedEnvSpec, error) {
	index := make(map[string]int)
	spec := &MergedEnvSpec{}

	add := func(v entity.EnvVarSpec) {
		if i, seen := index[v.Key]; seen {
			existing := &spec.Vars[i]
			existing.Required = existing.Required || v.Required
			if existing.Default == "" {
				existing.Default = v.Default
			}
			if existing.Description == "" {
				existing.Description = v.Description
			}
			return
		}
		index[v.Key] = len(spec.Vars)
		spec.Vars = append(spec.Vars, v)
	}

	baseVars, err := m.readBaseEnv()
	if err != nil {
		return nil, err
	}
	for _, v := range baseVars {
		add(v)
	}
	for _, feature := range set.Features {
		for _, v := range feature.EnvVars {
			add(v)
		}
	}

	return spec, nil
}

// readBaseEnv parses the base .env.example: KEY=value lines, with the
// preceding comment line kept as the description.
func (m *Merger) readBaseEnv() ([]entity.EnvVarSpec, error) {
	f, err := os.Open(filepath.Join(m.baseDir, baseEnvFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read base env template: %w", err)
	}
	defer f.Close()

	var vars []entity.EnvVarSpec
	var comment string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			comment = ""
		case strings.HasPrefix(line, "#"):
			comment = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		default:
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			vars = append(vars, entity.EnvVarSpec{
				Key:         strings.TrimSpace(key),
				Description: comment,
				Default:     strings.TrimSpace(value),
			})
			comment = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read base env template: %w", err)
	}
	return vars, nil
}

// RenderEnv produces the generated .env.example text.
func RenderEnv(spec *MergedEnvSpec) []byte {
	var sb strings.Builder
	sb.WriteString("# Environment configuration\n")
	sb.WriteString("# Copy to .env and fill in the required values.\n")
	for _, v := range spec.Vars {
		sb.WriteString("\n")
		if v.Description != "" {
			sb.WriteString("# " + v.Description + "\n")
		}
		if v.Required {
			sb.WriteString("# (required)\n")
		}
		sb.WriteString(v.Key + "=" + v.Default + "\n")
	}
	return []byte(sb.String())
}
