// FILE: pkg/generator/types.go
// Derived, request-scoped types flowing through the generation pipeline
package generator

import (
	"encoding/json"
	"fmt"

	"launchforge-be/internal/entity"
)

// ResolvedFeatureSet is the deduplicated, dependency-closed set of features
// computed for one order. Recomputed on every generation request, never
// persisted.
type ResolvedFeatureSet struct {
	// One entry per distinct resolved feature, in discovery order.
	Features []*entity.Feature
	// Slug of every resolved feature (including ones pulled in only as
	// dependencies), no duplicates, discovery order. Kept for the project
	// descriptor and audit logging.
	AllFeatureSlugs []string
}

// Empty reports the degenerate base-template-only case. It is valid input to
// the rest of the pipeline.
func (s *ResolvedFeatureSet) Empty() bool {
	return len(s.Features) == 0
}

// ProjectManifest is the merged package.json. Unknown top-level keys from the
// base manifest are carried through untouched; dependency maps are merged and
// re-emitted with lexicographically sorted keys so repeated generation of the
// same order is byte-for-byte identical.
type ProjectManifest struct {
	Dependencies    map[string]string
	DevDependencies map[string]string

	// Remaining top-level keys of the base package.json (name, scripts, ...)
	rest map[string]json.RawMessage
}

// Render serializes the manifest. encoding/json sorts map keys, which is what
// gives us the stable-output guarantee.
func (m *ProjectManifest) Render() ([]byte, error) {
	out := make(map[string]interface{}, len(m.rest)+2)
	for k, v := range m.rest {
		out[k] = v
	}
	out["dependencies"] = m.Dependencies
	out["devDependencies"] = m.DevDependencies

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render manifest: %w", err)
	}
	return append(b, '\n'), nil
}

// MergedSchema is the merged Prisma schema text plus the set of declared
// model/enum names, tracked so later fragments can be dropped first-wins.
type MergedSchema struct {
	Text          string
	DeclaredNames []string
}

// MergedEnvSpec is the deduplicated environment-variable list, base template
// variables first, then feature declarations in resolution order.
type MergedEnvSpec struct {
	Vars []entity.EnvVarSpec
}
