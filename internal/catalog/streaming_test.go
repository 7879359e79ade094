package catalog

import (
	"bytes"
	"io"
	"testing"
)

func TestNewCleanReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("CSCI100,Intro")...),
			expected: "CSCI100,Intro",
		},
		{
			name:     "file without BOM",
			input:    []byte("CSCI100,Intro"),
			expected: "CSCI100,Intro",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := io.ReadAll(NewCleanReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid ASCII", "CSCI100,Intro", "CSCI100,Intro"},
		{"valid multibyte", "MUS101,Música", "MUS101,Música"},
		{"invalid single byte", "he\x80lo", "he?lo"},
		{"each invalid byte replaced", "a\x80\x81b", "a??b"},
		{"latin-1 accent", "MUS101,M\xfasica", "MUS101,M?sica"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLine(tt.input); got != tt.want {
				t.Errorf("sanitizeLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_BOMAndCRLF(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("csci100,Intro to CS\r\nCSCI101,Programming Basics,CSCI100\r\n")...)

	cat, err := Parse(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	c, ok := cat.Lookup("CSCI100")
	if !ok {
		t.Fatal("BOM should not become part of the first identifier")
	}
	if c.Title != "Intro to CS" {
		t.Errorf("Title = %q, want %q", c.Title, "Intro to CS")
	}

	c, _ = cat.Lookup("CSCI101")
	if len(c.Prerequisites) != 1 || c.Prerequisites[0] != "CSCI100" {
		t.Errorf("Prerequisites = %q, want [CSCI100]", c.Prerequisites)
	}
}
