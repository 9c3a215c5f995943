package generator

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"launchforge-be/internal/entity"

	"github.com/google/uuid"
)

func testOrder() *entity.Order {
	return &entity.Order{
		Id:            uuid.New(),
		OrderNumber:   "LF-2026-000042",
		Tier:          "growth",
		CustomerName:  "Dana Smith",
		CustomerEmail: "dana@example.com",
	}
}

func TestBuildDescriptor(t *testing.T) {
	order := testOrder()
	order.Template = &entity.Template{Slug: "saas-starter", Name: "SaaS Starter"}
	set := setOf(feat("auth.basic"), feat("payments.stripe"))

	first, err := BuildDescriptor(order, set)
	if err != nil {
		t.Fatalf("BuildDescriptor() error = %v", err)
	}
	second, err := BuildDescriptor(order, set)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("descriptor is not deterministic for the same order")
	}

	var d struct {
		Generator   string   `json:"generator"`
		OrderNumber string   `json:"orderNumber"`
		Tier        string   `json:"tier"`
		Template    string   `json:"template"`
		Features    []string `json:"features"`
	}
	if err := json.Unmarshal(first, &d); err != nil {
		t.Fatalf("descriptor is not valid JSON: %v", err)
	}
	if d.OrderNumber != "LF-2026-000042" || d.Tier != "growth" || d.Template != "saas-starter" {
		t.Errorf("descriptor fields = %+v", d)
	}
	if len(d.Features) != 2 {
		t.Errorf("features = %v, want 2 entries", d.Features)
	}
}

func TestBuildDescriptorEmptySet(t *testing.T) {
	b, err := BuildDescriptor(testOrder(), &ResolvedFeatureSet{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"features": []`) {
		t.Errorf("empty set should render an empty array, got:\n%s", b)
	}
}

func TestBuildReadme(t *testing.T) {
	order := testOrder()

	authMod := &entity.Module{Slug: "auth", Category: "authentication"}
	payMod := &entity.Module{Slug: "monetization", Category: "monetization"}

	set := setOf(
		&entity.Feature{Slug: "payments.stripe", Name: "Stripe Payments", Description: "Subscription billing", Module: payMod, IsActive: true},
		&entity.Feature{Slug: "auth.basic", Name: "Basic Authentication", Description: "Email and password auth", Module: authMod, IsActive: true},
		&entity.Feature{Slug: "misc.thing", Name: "Misc Thing", Description: "No module preloaded", IsActive: true},
	)

	out := string(BuildReadme(order, set))

	// Categories alphabetical: Authentication < General < Monetization.
	authIdx := strings.Index(out, "### Authentication")
	genIdx := strings.Index(out, "### General")
	payIdx := strings.Index(out, "### Monetization")
	if authIdx == -1 || genIdx == -1 || payIdx == -1 {
		t.Fatalf("missing category sections:\n%s", out)
	}
	if !(authIdx < genIdx && genIdx < payIdx) {
		t.Error("categories are not in alphabetical order")
	}

	if !strings.Contains(out, "- **Basic Authentication**: Email and password auth") {
		t.Error("feature bullet missing")
	}
	if !strings.Contains(out, "## Quick Start") {
		t.Error("quick start section missing")
	}
	if !strings.Contains(out, "LF-2026-000042") {
		t.Error("order number missing from header")
	}
}

func TestBuildReadmeEmptySet(t *testing.T) {
	out := string(BuildReadme(testOrder(), &ResolvedFeatureSet{}))
	if strings.Contains(out, "## Included Features") {
		t.Error("empty set should not render a features section")
	}
	if !strings.Contains(out, "## Quick Start") {
		t.Error("quick start section must render regardless")
	}
}

func TestBuildLicenseDoc(t *testing.T) {
	order := testOrder()
	expires := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
	order.License = &entity.License{Key: "LF-AAAAA-BBBBB", ExpiresAt: &expires}

	out := string(BuildLicenseDoc(order))
	if !strings.Contains(out, "License key: LF-AAAAA-BBBBB") {
		t.Errorf("license key missing:\n%s", out)
	}
	if !strings.Contains(out, "Valid until: 2027-03-01") {
		t.Errorf("expiry missing:\n%s", out)
	}
	if !strings.Contains(out, "Licensee: Dana Smith") {
		t.Errorf("licensee missing:\n%s", out)
	}
}

func TestBuildLicenseDocMissingFields(t *testing.T) {
	out := string(BuildLicenseDoc(&entity.Order{OrderNumber: "LF-2026-000001"}))

	for _, line := range []string{
		"Licensee: N/A",
		"Email: N/A",
		"License key: N/A",
		"Valid until: N/A",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q in:\n%s", line, out)
		}
	}
}

func TestArchiveRootName(t *testing.T) {
	tests := []struct {
		templateSlug string
		tier         string
		want         string
	}{
		{"saas-starter", "growth", "saas-starter-growth"},
		{"", "growth", "saas-starter-growth"},
		{"marketplace", "", "marketplace"},
		{"", "", "saas-starter"},
	}
	for _, tt := range tests {
		if got := ArchiveRootName(tt.templateSlug, tt.tier); got != tt.want {
			t.Errorf("ArchiveRootName(%q, %q) = %q, want %q", tt.templateSlug, tt.tier, got, tt.want)
		}
	}
}
