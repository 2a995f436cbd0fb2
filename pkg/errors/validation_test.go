package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "layout.toml", false},
		{"nested", "scripts/ide.yaml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret.json", true},
		{"backslash", "dir\\file", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"plain", "ide", false},
		{"unicode", "éditeur", false},
		{"control char", "ide\x01", true},
		{"too long", strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		wantErr bool
	}{
		{"one", 1, false},
		{"retina", 2, false},
		{"upper bound", 8, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too large", 9, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScale(tt.scale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScale(%v) error = %v, wantErr %v", tt.scale, err, tt.wantErr)
			}
		})
	}
}
