package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindPDFsInDirectory(t *testing.T) {
	tempDir := t.TempDir()

	// Two valid PDFs (by name and size), one empty one, one non-PDF, one
	// subdirectory. Only the two valid ones should be listed, sorted by name.
	for name, content := range map[string][]byte{
		"b-invoice.pdf": []byte("bbb"),
		"a-invoice.PDF": []byte("aaa"),
		"empty.pdf":     nil,
		"notes.txt":     []byte("text"),
	} {
		if err := os.WriteFile(filepath.Join(tempDir, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(tempDir, "nested.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := NewSearch(1024)

	files, err := s.FindPDFsInDirectory(tempDir)
	if err != nil {
		t.Fatalf("FindPDFsInDirectory() error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Name != "a-invoice.PDF" || files[1].Name != "b-invoice.pdf" {
		t.Errorf("unexpected order: %q, %q", files[0].Name, files[1].Name)
	}
	for _, f := range files {
		if f.Size == 0 {
			t.Errorf("%s: Size not populated", f.Name)
		}
		if f.ModifiedTime == "" {
			t.Errorf("%s: ModifiedTime not populated", f.Name)
		}
		if f.Path != filepath.Join(tempDir, f.Name) {
			t.Errorf("%s: Path = %q", f.Name, f.Path)
		}
	}
}

func TestFindPDFsInDirectoryErrors(t *testing.T) {
	s := NewSearch(1024)

	if _, err := s.FindPDFsInDirectory(""); err == nil {
		t.Error("expected error for empty directory")
	}
	if _, err := s.FindPDFsInDirectory("/nonexistent/uploads"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestCountPDFsInDirectory(t *testing.T) {
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, "one.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSearch(1024)

	count, err := s.CountPDFsInDirectory(tempDir)
	if err != nil {
		t.Fatalf("CountPDFsInDirectory() error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
