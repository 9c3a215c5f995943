package entity

import (
	"testing"
	"time"
)

func TestLicenseDownloadable(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		license License
		want    bool
	}{
		{
			name:    "active unlimited",
			license: License{Status: LicenseStatusActive},
			want:    true,
		},
		{
			name:    "revoked",
			license: License{Status: LicenseStatusRevoked},
			want:    false,
		},
		{
			name:    "expired by timestamp",
			license: License{Status: LicenseStatusActive, ExpiresAt: &past},
			want:    false,
		},
		{
			name:    "not yet expired",
			license: License{Status: LicenseStatusActive, ExpiresAt: &future},
			want:    true,
		},
		{
			name:    "download limit reached",
			license: License{Status: LicenseStatusActive, MaxDownloads: 3, DownloadCount: 3},
			want:    false,
		},
		{
			name:    "downloads remaining",
			license: License{Status: LicenseStatusActive, MaxDownloads: 3, DownloadCount: 2},
			want:    true,
		},
		{
			name:    "zero max means unlimited",
			license: License{Status: LicenseStatusActive, MaxDownloads: 0, DownloadCount: 9999},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.license.Downloadable(now); got != tt.want {
				t.Errorf("Downloadable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeatureAvailableOnTier(t *testing.T) {
	tests := []struct {
		name  string
		tiers []string
		tier  string
		want  bool
	}{
		{"empty tiers is available everywhere", nil, "starter", true},
		{"listed tier", []string{"growth", "scale"}, "growth", true},
		{"unlisted tier", []string{"growth", "scale"}, "starter", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Feature{Slug: "x", Tiers: tt.tiers}
			if got := f.AvailableOnTier(tt.tier); got != tt.want {
				t.Errorf("AvailableOnTier(%q) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func TestFeatureCategory(t *testing.T) {
	withModule := Feature{Module: &Module{Category: "authentication"}}
	if got := withModule.Category(); got != "authentication" {
		t.Errorf("Category() = %q", got)
	}

	var orphan Feature
	if got := orphan.Category(); got != "general" {
		t.Errorf("Category() without module = %q, want general", got)
	}
}
