package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic trim",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "multiple spaces",
			input: "hello    world",
			want:  "hello world",
		},
		{
			name:  "tabs and newlines",
			input: "hello\t\nworld",
			want:  "hello world",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Mrs O'Brien's flat ",
			want:  "Mrs O'Brien's flat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeVisitDuration(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{"below minimum clamps up", 5, 15},
		{"at minimum", 15, 15},
		{"normal value", 60, 60},
		{"at maximum", 480, 480},
		{"above maximum clamps down", 600, 480},
		{"negative clamps up", -10, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVisitDuration(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeVisitDuration(%d) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
