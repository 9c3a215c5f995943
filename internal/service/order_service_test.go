// FILE: internal/service/order_service_test.go
package service

import (
	"regexp"
	"testing"
)

func TestNewLicenseKeyFormat(t *testing.T) {
	keyRe := regexp.MustCompile(`^LF-[0-9A-F]{5}-[0-9A-F]{5}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := newLicenseKey()
		if !keyRe.MatchString(key) {
			t.Fatalf("license key %q does not match LF-XXXXX-XXXXX", key)
		}
		if seen[key] {
			t.Fatalf("duplicate license key generated: %s", key)
		}
		seen[key] = true
	}
}

func TestRandomTokenLength(t *testing.T) {
	token := randomToken(24)
	if len(token) != 48 {
		t.Errorf("randomToken(24) length = %d, want 48 hex chars", len(token))
	}
	if token == randomToken(24) {
		t.Error("two tokens should never be equal")
	}
}
