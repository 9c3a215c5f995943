package generator

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"launchforge-be/internal/entity"
)

const testBaseManifest = `{
  "name": "saas-starter",
  "version": "0.1.0",
  "scripts": {
    "dev": "tsx watch src/index.ts"
  },
  "dependencies": {
    "express": "^4.18.2"
  },
  "devDependencies": {
    "typescript": "^5.3.3"
  }
}
`

const testBaseSchema = `generator client {
  provider = "prisma-client-js"
}

datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}
`

// writeBase lays out a minimal base template under a temp dir.
func writeBase(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func setOf(features ...*entity.Feature) *ResolvedFeatureSet {
	slugs := make([]string, 0, len(features))
	for _, f := range features {
		slugs = append(slugs, f.Slug)
	}
	return &ResolvedFeatureSet{Features: features, AllFeatureSlugs: slugs}
}

func TestMergeManifest(t *testing.T) {
	dir := writeBase(t, map[string]string{"package.json": testBaseManifest})
	m := NewMerger(dir)

	stripe := &entity.Feature{
		Slug: "payments.stripe",
		PackageDependencies: []entity.PackageDependency{
			{Name: "stripe", Version: "^14.10.0"},
		},
	}
	uploads := &entity.Feature{
		Slug: "file-upload.s3",
		PackageDependencies: []entity.PackageDependency{
			{Name: "@aws-sdk/client-s3", Version: "^3.490.0"},
			{Name: "@types/nodemailer", Version: "^6.4.14", Dev: true},
		},
	}

	manifest, err := m.MergeManifest(setOf(stripe, uploads))
	if err != nil {
		t.Fatalf("MergeManifest() error = %v", err)
	}

	if got := manifest.Dependencies["express"]; got != "^4.18.2" {
		t.Errorf("base dependency express = %q, want ^4.18.2", got)
	}
	if got := manifest.Dependencies["stripe"]; got != "^14.10.0" {
		t.Errorf("stripe = %q, want ^14.10.0", got)
	}
	if got := manifest.DevDependencies["@types/nodemailer"]; got != "^6.4.14" {
		t.Errorf("dev dep @types/nodemailer = %q, want ^6.4.14", got)
	}
	if _, inDeps := manifest.Dependencies["@types/nodemailer"]; inDeps {
		t.Error("dev-flagged package leaked into dependencies")
	}
}

func TestMergeManifestLastFeatureWins(t *testing.T) {
	dir := writeBase(t, map[string]string{"package.json": testBaseManifest})
	m := NewMerger(dir)

	first := &entity.Feature{
		Slug:                "a",
		PackageDependencies: []entity.PackageDependency{{Name: "zod", Version: "^3.21.0"}},
	}
	second := &entity.Feature{
		Slug:                "b",
		PackageDependencies: []entity.PackageDependency{{Name: "zod", Version: "^3.22.4"}},
	}

	manifest, err := m.MergeManifest(setOf(first, second))
	if err != nil {
		t.Fatalf("MergeManifest() error = %v", err)
	}
	if got := manifest.Dependencies["zod"]; got != "^3.22.4" {
		t.Errorf("zod = %q, want later feature's ^3.22.4", got)
	}
}

func TestMergeManifestStableOutput(t *testing.T) {
	dir := writeBase(t, map[string]string{"package.json": testBaseManifest})
	m := NewMerger(dir)

	f := &entity.Feature{
		Slug: "auth.basic",
		PackageDependencies: []entity.PackageDependency{
			{Name: "argon2", Version: "^0.31.0"},
			{Name: "cookie", Version: "^0.6.0"},
		},
	}

	first, err := m.MergeManifest(setOf(f))
	if err != nil {
		t.Fatal(err)
	}
	firstBytes, err := first.Render()
	if err != nil {
		t.Fatal(err)
	}

	second, err := m.MergeManifest(setOf(f))
	if err != nil {
		t.Fatal(err)
	}
	secondBytes, err := second.Render()
	if err != nil {
		t.Fatal(err)
	}

	if string(firstBytes) != string(secondBytes) {
		t.Error("repeated merges of the same input produced different manifests")
	}

	// Dependency keys must come out lexicographically sorted.
	var decoded struct {
		Dependencies map[string]string `json:"dependencies"`
		Scripts      map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(firstBytes, &decoded); err != nil {
		t.Fatalf("rendered manifest is not valid JSON: %v", err)
	}
	if decoded.Scripts["dev"] != "tsx watch src/index.ts" {
		t.Error("unmanaged top-level key was not carried through")
	}

	argonIdx := strings.Index(string(firstBytes), `"argon2"`)
	expressIdx := strings.Index(string(firstBytes), `"express"`)
	if argonIdx == -1 || expressIdx == -1 || argonIdx > expressIdx {
		t.Error("dependency keys are not in lexicographic order")
	}
}

func TestMergeManifestMissingBase(t *testing.T) {
	m := NewMerger(t.TempDir())
	_, err := m.MergeManifest(setOf())
	if !errors.Is(err, ErrBaseManifest) {
		t.Errorf("error = %v, want ErrBaseManifest", err)
	}
}

func TestMergeSchema(t *testing.T) {
	dir := writeBase(t, map[string]string{
		"prisma/schema.prisma":     testBaseSchema,
		"_features/user.prisma":    "model User {\n  id String @id\n}\n",
		"_features/sess.prisma":    "model Session {\n  id String @id\n}\n",
		"_features/dupuser.prisma": "model User {\n  id Int @id\n}\n",
	})
	m := NewMerger(dir)

	auth := &entity.Feature{
		Slug: "auth.basic",
		SchemaMappings: []entity.SchemaMapping{
			{Model: "User", Source: "_features/user.prisma"},
			{Model: "Session", Source: "_features/sess.prisma"},
		},
	}
	other := &entity.Feature{
		Slug: "other",
		SchemaMappings: []entity.SchemaMapping{
			{Model: "User", Source: "_features/dupuser.prisma"},
		},
	}

	schema, err := m.MergeSchema(setOf(auth, other))
	if err != nil {
		t.Fatalf("MergeSchema() error = %v", err)
	}

	if !strings.HasPrefix(schema.Text, "generator client {") {
		t.Error("base preamble was not preserved at the top")
	}
	if got := strings.Count(schema.Text, "model User"); got != 1 {
		t.Errorf("model User declared %d times, want 1 (first wins)", got)
	}
	if !strings.Contains(schema.Text, "id String @id") {
		t.Error("first declaration's body missing")
	}
	if strings.Contains(schema.Text, "id Int @id") {
		t.Error("colliding later fragment was not dropped")
	}
	if !strings.Contains(schema.Text, "model Session") {
		t.Error("non-colliding fragment missing")
	}

	// The declared-name set mirrors what actually landed in the text: every
	// name once, dropped fragments absent.
	if got := strings.Join(schema.DeclaredNames, ","); got != "User,Session" {
		t.Errorf("DeclaredNames = %q, want \"User,Session\"", got)
	}
}

func TestMergeSchemaFragmentWithHelperEnum(t *testing.T) {
	dir := writeBase(t, map[string]string{
		"prisma/schema.prisma":   testBaseSchema,
		"_features/sub.prisma":   "enum SubStatus {\n  ACTIVE\n  CANCELED\n}\n\nmodel Subscription {\n  id String @id\n  status SubStatus\n}\n",
		"_features/clash.prisma": "enum SubStatus {\n  OTHER\n}\n\nmodel Billing {\n  id String @id\n}\n",
	})
	m := NewMerger(dir)

	set := setOf(
		&entity.Feature{Slug: "a", SchemaMappings: []entity.SchemaMapping{{Model: "Subscription", Source: "_features/sub.prisma"}}},
		&entity.Feature{Slug: "b", SchemaMappings: []entity.SchemaMapping{{Model: "Billing", Source: "_features/clash.prisma"}}},
	)

	schema, err := m.MergeSchema(set)
	if err != nil {
		t.Fatalf("MergeSchema() error = %v", err)
	}

	// The second fragment redeclares SubStatus, so the whole fragment is
	// dropped, Billing included.
	if got := strings.Count(schema.Text, "enum SubStatus"); got != 1 {
		t.Errorf("enum SubStatus declared %d times, want 1", got)
	}
	if strings.Contains(schema.Text, "model Billing") {
		t.Error("fragment with colliding helper enum should be dropped whole")
	}
}

func TestMergeSchemaMissingBase(t *testing.T) {
	m := NewMerger(t.TempDir())
	_, err := m.MergeSchema(setOf())
	if !errors.Is(err, ErrBaseSchema) {
		t.Errorf("error = %v, want ErrBaseSchema", err)
	}
}

func TestMergeEnv(t *testing.T) {
	dir := writeBase(t, map[string]string{
		".env.example": "# Postgres connection string\nDATABASE_URL=postgresql://localhost/app\n\nPORT=3000\n",
	})
	m := NewMerger(dir)

	set := setOf(
		&entity.Feature{Slug: "a", EnvVars: []entity.EnvVarSpec{
			{Key: "STRIPE_SECRET_KEY", Description: "Stripe API key", Required: true},
			{Key: "PORT", Description: "HTTP port", Required: true},
		}},
		&entity.Feature{Slug: "b", EnvVars: []entity.EnvVarSpec{
			{Key: "STRIPE_SECRET_KEY", Required: false, Default: "sk_test_placeholder"},
		}},
	)

	spec, err := m.MergeEnv(set)
	if err != nil {
		t.Fatalf("MergeEnv() error = %v", err)
	}

	byKey := make(map[string]entity.EnvVarSpec)
	for _, v := range spec.Vars {
		if _, dup := byKey[v.Key]; dup {
			t.Errorf("key %s appears more than once", v.Key)
		}
		byKey[v.Key] = v
	}

	// Base variables come first.
	if spec.Vars[0].Key != "DATABASE_URL" {
		t.Errorf("first var = %s, want DATABASE_URL", spec.Vars[0].Key)
	}
	if byKey["DATABASE_URL"].Description != "Postgres connection string" {
		t.Errorf("DATABASE_URL description = %q", byKey["DATABASE_URL"].Description)
	}

	// Required ORs across declarations; base PORT was optional, feature made
	// it required.
	if !byKey["PORT"].Required {
		t.Error("PORT should be required after OR with feature declaration")
	}
	if !byKey["STRIPE_SECRET_KEY"].Required {
		t.Error("STRIPE_SECRET_KEY should stay required despite later optional declaration")
	}
	// First default wins; the first declaration had none so the later one
	// fills it.
	if byKey["STRIPE_SECRET_KEY"].Default != "sk_test_placeholder" {
		t.Errorf("STRIPE_SECRET_KEY default = %q", byKey["STRIPE_SECRET_KEY"].Default)
	}
}

func TestMergeEnvMissingBaseNotFatal(t *testing.T) {
	m := NewMerger(t.TempDir())

	spec, err := m.MergeEnv(setOf(&entity.Feature{Slug: "a", EnvVars: []entity.EnvVarSpec{{Key: "ONLY", Required: true}}}))
	if err != nil {
		t.Fatalf("MergeEnv() error = %v", err)
	}
	if len(spec.Vars) != 1 || spec.Vars[0].Key != "ONLY" {
		t.Errorf("Vars = %+v, want the single feature var", spec.Vars)
	}
}

func TestRenderEnv(t *testing.T) {
	spec := &MergedEnvSpec{Vars: []entity.EnvVarSpec{
		{Key: "DATABASE_URL", Description: "Postgres connection string", Required: true},
		{Key: "PORT", Default: "3000"},
	}}

	out := string(RenderEnv(spec))
	if !strings.Contains(out, "# Postgres connection string\n# (required)\nDATABASE_URL=\n") {
		t.Errorf("rendered env missing required block:\n%s", out)
	}
	if !strings.Contains(out, "PORT=3000\n") {
		t.Errorf("rendered env missing default value:\n%s", out)
	}
}
