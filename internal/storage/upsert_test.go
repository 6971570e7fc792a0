package storage

import (
	"strings"
	"testing"
)

func TestUpsertStatementPerDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   string
		reject string
	}{
		{"mysql", "ON DUPLICATE KEY UPDATE", "ON CONFLICT"},
		{"sqlite", "ON CONFLICT (name) DO UPDATE", "ON DUPLICATE"},
		{"postgres", "ON CONFLICT (name) DO UPDATE", "ON DUPLICATE"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got := upsertStatement(tt.driver)
			if !strings.Contains(got, tt.want) {
				t.Errorf("upsert for %s missing %q:\n%s", tt.driver, tt.want, got)
			}
			if strings.Contains(got, tt.reject) {
				t.Errorf("upsert for %s contains %q, which its parser rejects:\n%s", tt.driver, tt.reject, got)
			}
		})
	}
}
