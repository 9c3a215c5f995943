package generator

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"launchforge-be/internal/entity"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// fullBase lays out a base template exercising every merge path.
func fullBase(t *testing.T) string {
	return writeBase(t, map[string]string{
		"package.json":         testBaseManifest,
		"prisma/schema.prisma": testBaseSchema,
		".env.example":         "# Postgres connection string\nDATABASE_URL=postgresql://localhost/app\n",
		"src/index.ts":         "console.log('hi')\n",
		"_features/auth-basic/user.prisma":              "model User {\n  id String @id\n}\n",
		"_features/auth-basic/auth.service.ts":          "export const auth = true\n",
		"_features/social-auth-google/oauth.prisma":     "model OAuthAccount {\n  id String @id\n}\n",
		"_features/payments-stripe/subscription.prisma": "model Subscription {\n  id String @id\n}\n",
	})
}

func scenarioCatalog() *memCatalog {
	authBasic := &entity.Feature{
		Slug: "auth.basic", Name: "Basic Authentication", IsActive: true,
		FileMappings:   []entity.FileMapping{{Source: "_features/auth-basic/auth.service.ts", Destination: "src/auth/auth.service.ts"}},
		SchemaMappings: []entity.SchemaMapping{{Model: "User", Source: "_features/auth-basic/user.prisma"}},
		EnvVars:        []entity.EnvVarSpec{{Key: "SESSION_SECRET", Description: "Session signing secret", Required: true}},
		PackageDependencies: []entity.PackageDependency{
			{Name: "argon2", Version: "^0.31.0"},
		},
	}
	google := &entity.Feature{
		Slug: "social-auth.google", Name: "Google Social Login", IsActive: true,
		Tiers:          []string{"growth", "scale"},
		Requires:       []string{"auth.basic"},
		SchemaMappings: []entity.SchemaMapping{{Model: "OAuthAccount", Source: "_features/social-auth-google/oauth.prisma"}},
		EnvVars:        []entity.EnvVarSpec{{Key: "GOOGLE_CLIENT_ID", Required: true}},
		PackageDependencies: []entity.PackageDependency{
			{Name: "google-auth-library", Version: "^9.4.0"},
		},
	}
	stripe := &entity.Feature{
		Slug: "payments.stripe", Name: "Stripe Payments", IsActive: true,
		Requires:       []string{"auth.basic"},
		SchemaMappings: []entity.SchemaMapping{{Model: "Subscription", Source: "_features/payments-stripe/subscription.prisma"}},
		EnvVars:        []entity.EnvVarSpec{{Key: "STRIPE_SECRET_KEY", Required: true}},
		PackageDependencies: []entity.PackageDependency{
			{Name: "stripe", Version: "^14.10.0"},
		},
	}
	return newMemCatalog(authBasic, google, stripe)
}

func scenarioOrder() *entity.Order {
	return &entity.Order{
		Id:                   uuid.New(),
		OrderNumber:          "LF-2026-000042",
		Tier:                 "growth",
		SelectedFeatureSlugs: []string{"social-auth.google", "payments.stripe"},
		CustomerName:         "Dana Smith",
		CustomerEmail:        "dana@example.com",
		Template: &entity.Template{
			Slug:                 "saas-starter",
			Name:                 "SaaS Starter",
			IncludedFeatureSlugs: []string{"auth.basic"},
		},
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	g := New(scenarioCatalog(), fullBase(t), nopLogger{})

	var buf bytes.Buffer
	result, err := g.Generate(context.Background(), scenarioOrder(), &buf)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.RootName != "saas-starter-growth" {
		t.Errorf("RootName = %q", result.RootName)
	}
	if result.FeatureCount != 3 {
		t.Errorf("FeatureCount = %d, want 3 (selection + template + dependency, deduplicated)", result.FeatureCount)
	}

	entries := readZip(t, &buf)
	root := result.RootName + "/"

	manifest := entries[root+"package.json"]
	for _, dep := range []string{`"argon2"`, `"google-auth-library"`, `"stripe"`, `"express"`} {
		if !strings.Contains(manifest, dep) {
			t.Errorf("merged manifest missing %s", dep)
		}
	}

	schema := entries[root+"prisma/schema.prisma"]
	if !strings.HasPrefix(schema, "generator client {") {
		t.Error("schema preamble not preserved")
	}
	if strings.Count(schema, "model User") != 1 {
		t.Error("model User not declared exactly once")
	}
	for _, model := range []string{"model OAuthAccount", "model Subscription"} {
		if !strings.Contains(schema, model) {
			t.Errorf("schema missing %s", model)
		}
	}

	env := entries[root+".env.example"]
	for _, key := range []string{"DATABASE_URL=", "SESSION_SECRET=", "GOOGLE_CLIENT_ID=", "STRIPE_SECRET_KEY="} {
		if !strings.Contains(env, key) {
			t.Errorf("env template missing %s", key)
		}
	}

	if got := entries[root+"src/auth/auth.service.ts"]; got != "export const auth = true\n" {
		t.Errorf("overlay file content = %q", got)
	}

	descriptor := entries[root+DescriptorFile]
	for _, slug := range []string{"social-auth.google", "payments.stripe", "auth.basic"} {
		if !strings.Contains(descriptor, slug) {
			t.Errorf("descriptor missing %s", slug)
		}
	}

	for _, doc := range []string{"README.md", "LICENSE.md"} {
		if _, ok := entries[root+doc]; !ok {
			t.Errorf("archive missing %s", doc)
		}
	}
	for name := range entries {
		if strings.Contains(name, "_features") {
			t.Errorf("fragment source leaked: %s", name)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	base := fullBase(t)

	run := func() []byte {
		g := New(scenarioCatalog(), base, nopLogger{})
		var buf bytes.Buffer
		if _, err := g.Generate(context.Background(), scenarioOrder(), &buf); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		return buf.Bytes()
	}

	first := readZipBytes(t, run())
	second := readZipBytes(t, run())

	if len(first) != len(second) {
		t.Fatalf("entry counts differ: %d vs %d", len(first), len(second))
	}
	for name, content := range first {
		if second[name] != content {
			t.Errorf("entry %s differs between runs", name)
		}
	}
}

func readZipBytes(t *testing.T, b []byte) map[string]string {
	t.Helper()
	buf := bytes.NewBuffer(b)
	return readZip(t, buf)
}

func TestGenerateUnknownSlugsOnly(t *testing.T) {
	g := New(scenarioCatalog(), fullBase(t), nopLogger{})

	order := scenarioOrder()
	order.Template = nil
	order.SelectedFeatureSlugs = []string{"ghost.one", "ghost.two"}

	var buf bytes.Buffer
	result, err := g.Generate(context.Background(), order, &buf)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.FeatureCount != 0 {
		t.Errorf("FeatureCount = %d, want 0", result.FeatureCount)
	}

	// Base-template-only build is still a complete archive.
	entries := readZip(t, &buf)
	if _, ok := entries["saas-starter-growth/package.json"]; !ok {
		t.Error("base-only archive missing package.json")
	}
	if _, ok := entries["saas-starter-growth/src/index.ts"]; !ok {
		t.Error("base-only archive missing base tree files")
	}
}

func TestGeneratePreStreamFailureWritesNothing(t *testing.T) {
	// No package.json in the base: the manifest merge fails before streaming.
	dir := writeBase(t, map[string]string{
		"prisma/schema.prisma": testBaseSchema,
		"src/index.ts":         "x\n",
	})
	g := New(scenarioCatalog(), dir, nopLogger{})

	var buf bytes.Buffer
	_, err := g.Generate(context.Background(), scenarioOrder(), &buf)
	if err == nil {
		t.Fatal("Generate() expected error for missing base manifest")
	}
	if buf.Len() != 0 {
		t.Errorf("sink received %d bytes on pre-stream failure, want 0", buf.Len())
	}
}
