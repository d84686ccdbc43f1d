package tail

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileCursorRoundTrip(t *testing.T) {
	cursor := NewFileCursor(filepath.Join(t.TempDir(), "cursor"))

	if err := cursor.Save(12345); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	pos, err := cursor.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if pos != 12345 {
		t.Errorf("Load() = %d, want 12345", pos)
	}
}

func TestFileCursorMissingFileIsZero(t *testing.T) {
	cursor := NewFileCursor(filepath.Join(t.TempDir(), "nope"))
	pos, err := cursor.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if pos != 0 {
		t.Errorf("Load() = %d, want 0 for missing file", pos)
	}
}

func TestFileCursorRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor")
	if err := os.WriteFile(path, []byte("not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileCursor(path).Load(); err == nil {
		t.Error("Load() on garbage content should error")
	}
}

func TestFileCursorRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor")
	if err := os.WriteFile(path, []byte("-5"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileCursor(path).Load(); err == nil {
		t.Error("Load() on negative value should error")
	}
}

func TestFileCursorOverwrites(t *testing.T) {
	cursor := NewFileCursor(filepath.Join(t.TempDir(), "cursor"))
	for _, pos := range []int64{0, 10, 7, 99} {
		if err := cursor.Save(pos); err != nil {
			t.Fatalf("Save(%d) error: %v", pos, err)
		}
		got, err := cursor.Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if got != pos {
			t.Errorf("Load() = %d, want %d", got, pos)
		}
	}
}
