package generator

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"launchforge-be/internal/entity"
)

// readZip opens the buffer as a zip and returns entry name -> content.
func readZip(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		entries[f.Name] = string(content)
	}
	return entries
}

func TestAssemblerStream(t *testing.T) {
	dir := writeBase(t, map[string]string{
		"src/index.ts":               "console.log('hi')\n",
		"tsconfig.json":              "{}\n",
		"node_modules/left/index.js": "should never ship\n",
		"dist/out.js":                "should never ship\n",
		"src/node_modules/x.js":      "ignored at any depth\n",
		"_features/auth/auth.ts":     "export const auth = true\n",
		"package.json":               testBaseManifest,
	})
	a := NewAssembler(dir)

	var buf bytes.Buffer
	overlays := map[string]string{
		"src/auth/auth.ts": dir + "/_features/auth/auth.ts",
	}
	generated := map[string][]byte{
		"package.json": []byte("{\"merged\":true}\n"),
		"README.md":    []byte("# readme\n"),
	}

	if err := a.Stream(context.Background(), &buf, "proj-growth", overlays, generated); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	entries := readZip(t, &buf)

	if _, ok := entries["proj-growth/src/index.ts"]; !ok {
		t.Error("base file missing from archive")
	}
	if got := entries["proj-growth/src/auth/auth.ts"]; got != "export const auth = true\n" {
		t.Errorf("overlay content = %q", got)
	}
	if got := entries["proj-growth/package.json"]; got != "{\"merged\":true}\n" {
		t.Errorf("generated manifest not used, got %q", got)
	}

	for name := range entries {
		if strings.Contains(name, "node_modules") || strings.Contains(name, "dist/") {
			t.Errorf("ignored dir leaked into archive: %s", name)
		}
		if strings.Contains(name, "_features") {
			t.Errorf("fragment sources leaked into archive: %s", name)
		}
		if !strings.HasPrefix(name, "proj-growth/") {
			t.Errorf("entry outside the root folder: %s", name)
		}
	}
}

func TestAssemblerOverlayWinsOverBaseFile(t *testing.T) {
	dir := writeBase(t, map[string]string{
		"src/app.ts":            "base version\n",
		"_features/over/app.ts": "overlay version\n",
	})
	a := NewAssembler(dir)

	var buf bytes.Buffer
	overlays := map[string]string{"src/app.ts": dir + "/_features/over/app.ts"}
	if err := a.Stream(context.Background(), &buf, "root", overlays, nil); err != nil {
		t.Fatal(err)
	}

	entries := readZip(t, &buf)
	if got := entries["root/src/app.ts"]; got != "overlay version\n" {
		t.Errorf("src/app.ts = %q, want the overlay to win", got)
	}
	for name, content := range entries {
		if name != "root/src/app.ts" {
			continue
		}
		if strings.Contains(content, "base version") {
			t.Error("base file shipped alongside the overlay")
		}
	}
}

func TestAssemblerGeneratedWinsOverOverlay(t *testing.T) {
	dir := writeBase(t, map[string]string{
		"src/index.ts":              "x\n",
		"_features/docs/README.md":  "fragment readme\n",
		"_features/docs/extra.json": "{\"fragment\":true}\n",
	})
	a := NewAssembler(dir)

	var buf bytes.Buffer
	overlays := map[string]string{
		"README.md":  dir + "/_features/docs/README.md",
		"extra.json": dir + "/_features/docs/extra.json",
	}
	generated := map[string][]byte{
		"README.md": []byte("# rendered readme\n"),
	}
	if err := a.Stream(context.Background(), &buf, "root", overlays, generated); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	seen := make(map[string]int)
	for _, f := range zr.File {
		seen[f.Name]++
	}
	if seen["root/README.md"] != 1 {
		t.Errorf("root/README.md appears %d times in the archive, want 1", seen["root/README.md"])
	}

	entries := readZip(t, &buf)
	if got := entries["root/README.md"]; got != "# rendered readme\n" {
		t.Errorf("README.md = %q, want the rendered content", got)
	}
	if got := entries["root/extra.json"]; got != "{\"fragment\":true}\n" {
		t.Errorf("extra.json = %q, want the overlay still written", got)
	}
}

func TestAssemblerMissingOverlaySourceFatal(t *testing.T) {
	dir := writeBase(t, map[string]string{"src/index.ts": "x\n"})
	a := NewAssembler(dir)

	var buf bytes.Buffer
	overlays := map[string]string{"src/gone.ts": dir + "/_features/missing.ts"}
	if err := a.Stream(context.Background(), &buf, "root", overlays, nil); err == nil {
		t.Fatal("Stream() expected error for missing overlay source")
	}
}

func TestAssemblerContextCancellation(t *testing.T) {
	dir := writeBase(t, map[string]string{"src/index.ts": "x\n"})
	a := NewAssembler(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := a.Stream(ctx, &buf, "root", nil, nil); err == nil {
		t.Fatal("Stream() expected error for cancelled context")
	}
}

func TestResolveOverlaysLastFeatureWins(t *testing.T) {
	a := NewAssembler("/base")

	set := setOf(
		&entity.Feature{Slug: "a", FileMappings: []entity.FileMapping{
			{Source: "_features/a/app.ts", Destination: "src/app.ts"},
		}},
		&entity.Feature{Slug: "b", FileMappings: []entity.FileMapping{
			{Source: "_features/b/app.ts", Destination: "/src/app.ts"},
		}},
	)

	overlays := a.ResolveOverlays(set)
	if len(overlays) != 1 {
		t.Fatalf("len(overlays) = %d, want 1", len(overlays))
	}
	if !strings.HasSuffix(overlays["src/app.ts"], "_features/b/app.ts") {
		t.Errorf("overlay source = %q, want feature b's file", overlays["src/app.ts"])
	}
}
