package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator(2048)
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
	if v.maxFileSize != 2048 {
		t.Errorf("maxFileSize = %d, want 2048", v.maxFileSize)
	}
}

func TestValidateFileInfo(t *testing.T) {
	tempDir := t.TempDir()

	smallPDF := filepath.Join(tempDir, "small.pdf")
	if err := os.WriteFile(smallPDF, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	emptyPDF := filepath.Join(tempDir, "empty.pdf")
	if err := os.WriteFile(emptyPDF, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	largePDF := filepath.Join(tempDir, "large.pdf")
	if err := os.WriteFile(largePDF, make([]byte, 4096), 0o644); err != nil {
		t.Fatal(err)
	}

	textFile := filepath.Join(tempDir, "readme.txt")
	if err := os.WriteFile(textFile, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := NewValidator(2048)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"valid small pdf", smallPDF, ""},
		{"directory", tempDir, "directory"},
		{"wrong extension", textFile, "not a PDF"},
		{"empty file", emptyPDF, "file is empty"},
		{"too large", largePDF, "file too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, statErr := os.Stat(tt.path)
			if statErr != nil {
				t.Fatal(statErr)
			}

			err := v.ValidateFileInfo(tt.path, info)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	tempDir := t.TempDir()
	v := NewValidator(2048)

	missing := filepath.Join(tempDir, "missing.pdf")
	result := v.ValidateFile(missing)
	if result.Valid {
		t.Error("missing file should not validate")
	}
	if result.Path != missing {
		t.Errorf("Path = %q, want %q", result.Path, missing)
	}
	if !strings.Contains(result.Message, "does not exist") {
		t.Errorf("Message = %q", result.Message)
	}

	result = v.ValidateFile("")
	if result.Valid {
		t.Error("empty path should not validate")
	}
}

func TestIsValidPDFRejectsGarbage(t *testing.T) {
	tempDir := t.TempDir()

	garbage := filepath.Join(tempDir, "garbage.pdf")
	if err := os.WriteFile(garbage, []byte("not really pdf bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	v := NewValidator(2048)
	if v.IsValidPDF(garbage) {
		t.Error("garbage content should fail the structural parse")
	}
}
