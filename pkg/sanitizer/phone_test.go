package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+447911123456",
			want:  "+447911123456",
		},
		{
			name:  "with spaces",
			input: "+44 7911 123 456",
			want:  "+447911123456",
		},
		{
			name:  "with dashes",
			input: "+44-7911-123-456",
			want:  "+447911123456",
		},
		{
			name:  "US with parentheses",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "national UK format",
			input: "07911 123456",
			want:  "+447911123456",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +447911123456  ",
			want:  "+447911123456",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "garbage",
			input: "not-a-phone",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeContactPhones(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "duplicates collapse after normalization",
			input: []string{"+447911123456", "+44 7911 123 456"},
			want:  []string{"+447911123456"},
		},
		{
			name:  "invalid entries dropped",
			input: []string{"garbage", "+12125551234"},
			want:  []string{"+12125551234"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeContactPhones(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeContactPhones(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizeContactPhones(%v)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
