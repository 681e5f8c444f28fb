package parser

import "testing"

func TestNormalizeCourseCode(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"INFO-2010", "INFO-2010", false},
		{"info-2010", "INFO-2010", false},
		{"  math-101  ", "MATH-101", false},
		{"", "", false},
		{"INFO2010", "", true},
		{"I-2010", "", true},      // department too short
		{"INFO-20", "", true},     // number too short
		{"INFO-20100", "", true},  // number too long
		{"INFO-2010x", "", true},  // trailing garbage
		{"2010-INFO", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeCourseCode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeCourseCode(%q) expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeCourseCode(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeCourseCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidCourseCode(t *testing.T) {
	if !IsValidCourseCode("") {
		t.Error("empty course code should be valid (optional field)")
	}
	if !IsValidCourseCode("bio-340") {
		t.Error("lowercase course code should be accepted")
	}
	if IsValidCourseCode("not a course") {
		t.Error("free text should not be a course code")
	}
}
