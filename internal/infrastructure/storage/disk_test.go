package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSave(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	name, err := store.Save(context.Background(), "cv.pdf", strings.NewReader("resume body"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("extension lost: %q", name)
	}
	if strings.ContainsAny(name, "/\\") {
		t.Fatalf("stored name must be a bare filename: %q", name)
	}

	body, err := os.ReadFile(filepath.Join(store.baseDir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(body) != "resume body" {
		t.Fatalf("content mismatch: %q", body)
	}
}

func TestDiskStoreSave_HostileFilename(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	name, err := store.Save(context.Background(), "../../etc/passwd.sh", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(name, "..") || strings.HasSuffix(name, ".sh") {
		t.Fatalf("hostile filename leaked into stored name: %q", name)
	}
	if _, err := os.Stat(filepath.Join(store.baseDir, name)); err != nil {
		t.Fatalf("file not stored under base dir: %v", err)
	}
}

func TestSanitizeExt(t *testing.T) {
	cases := map[string]string{
		"cv.pdf":        ".pdf",
		"letter.DOCX":   "",
		"notes.txt":     ".txt",
		"archive.tar":   "",
		"noextension":   "",
		"double.pdf.js": "",
	}
	for in, want := range cases {
		if got := sanitizeExt(in); got != want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
