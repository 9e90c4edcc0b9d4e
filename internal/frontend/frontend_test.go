package frontend

import (
	"testing"
)

func TestNewParser(t *testing.T) {
	t.Run("creates C++ parser", func(t *testing.T) {
		p, err := NewParser(Cpp)
		if err != nil {
			t.Fatalf("NewParser(Cpp) failed: %v", err)
		}
		defer p.Close()

		if p.Language() != Cpp {
			t.Errorf("expected language %s, got %s", Cpp, p.Language())
		}
	})

	t.Run("creates C parser", func(t *testing.T) {
		p, err := NewParser(C)
		if err != nil {
			t.Fatalf("NewParser(C) failed: %v", err)
		}
		defer p.Close()
	})

	t.Run("rejects unsupported language", func(t *testing.T) {
		_, err := NewParser(Language("fortran"))
		if err == nil {
			t.Fatal("expected error for unsupported language")
		}
		if _, ok := err.(*UnsupportedLanguageError); !ok {
			t.Errorf("expected UnsupportedLanguageError, got %T", err)
		}
	})
}

func TestLanguageFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Language
	}{
		{".c", C},
		{".h", Cpp},
		{".cxx", Cpp},
		{".hpp", Cpp},
		{".go", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LanguageFromExtension(tt.ext); got != tt.want {
			t.Errorf("LanguageFromExtension(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	p, err := NewParser(Cpp)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	result, err := p.Parse([]byte("namespace {{{"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer result.Close()

	if !result.HasErrors() {
		t.Error("expected syntax errors for malformed input")
	}
}
