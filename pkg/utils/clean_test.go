package utils

import "testing"

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "simple block",
			input:  "```json\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "block with surrounding text",
			input:  "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps!",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "first of two blocks wins",
			input:  "```json\n{\"first\": true}\n```\ntext\n```json\n{\"second\": true}\n```",
			want:   `{"first": true}`,
			wantOK: true,
		},
		{
			name:   "no block",
			input:  "just a plain answer without any code",
			wantOK: false,
		},
		{
			name:   "plain fence without json label",
			input:  "```\n{\"a\": 1}\n```",
			wantOK: false,
		},
		{
			name:   "unclosed fence",
			input:  "```json\n{\"a\": 1}",
			wantOK: false,
		},
		{
			name:   "empty block",
			input:  "```json\n```",
			want:   "",
			wantOK: true,
		},
		{
			name:   "invalid content still extracted",
			input:  "```json\nnot json at all\n```",
			want:   "not json at all",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONBlock(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractJSONBlock() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractJSONBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`},
		{"object with prose around", `The result is {"a": 1} as requested.`, `{"a": 1}`},
		{"nested object", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`},
		{"no object", "nothing here", ""},
		{"unbalanced", `{"a": 1`, `{"a": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
