// ABOUTME: Tests for map command structure and flags
// ABOUTME: Rendering behavior is covered by maprender and router tests
package commands

import (
	"testing"
)

func TestNewMapCmd(t *testing.T) {
	cmd := NewMapCmd()

	if cmd.Use != "map <category>" {
		t.Errorf("Use = %q", cmd.Use)
	}

	tests := []struct {
		flag     string
		defValue string
	}{
		{"name", ""},
		{"region", ""},
		{"layer", "surface"},
	}
	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.flag)
		if flag == nil {
			t.Errorf("--%s flag not found", tt.flag)
			continue
		}
		if flag.DefValue != tt.defValue {
			t.Errorf("--%s default = %q, want %q", tt.flag, flag.DefValue, tt.defValue)
		}
	}
}

func TestMapCmd_RequiresCategory(t *testing.T) {
	cmd := NewMapCmd()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("map with no category should fail validation")
	}
	if err := cmd.Args(cmd, []string{"monster", "extra"}); err == nil {
		t.Error("map with extra arguments should fail validation")
	}
}
