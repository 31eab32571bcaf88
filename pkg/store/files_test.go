package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestFiles_Save проверяет именование и содержимое файла результата.
func TestFiles_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "responses")
	files := NewFiles(dir)

	payload := map[string]any{"success": true, "model": "test-vision"}
	path, err := files.Save(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "response_") || !strings.HasSuffix(base, ".json") {
		t.Errorf("unexpected filename %s", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("result file should exist: %v", err)
	}

	// Pretty-printed JSON: отступы и перенос строк
	if !strings.Contains(string(data), "\n  ") {
		t.Error("result should be pretty-printed with two-space indent")
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("result file should be valid JSON: %v", err)
	}
	if decoded["model"] != "test-vision" {
		t.Errorf("unexpected model in file: %v", decoded["model"])
	}
}

// TestFiles_SaveUnmarshalable: несериализуемое значение — ошибка, не паника.
func TestFiles_SaveUnmarshalable(t *testing.T) {
	files := NewFiles(t.TempDir())

	if _, err := files.Save(map[string]any{"fn": func() {}}); err == nil {
		t.Fatal("expected marshal error")
	}
}
