package tail

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CursorStore persists the byte offset of how much of the log has already
// been processed, so a restart resumes where the last read left off.
type CursorStore interface {
	Load() (int64, error)
	Save(pos int64) error
}

// FileCursor stores the cursor as a decimal integer in a single file.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a corrupt cursor behind.
type FileCursor struct {
	path string
}

func NewFileCursor(path string) *FileCursor {
	return &FileCursor{path: path}
}

// Load reads the persisted position. A missing file means a fresh start
// and loads as 0 without error.
func (c *FileCursor) Load() (int64, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	pos, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cursor %s: %w", c.path, err)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative cursor in %s: %d", c.path, pos)
	}
	return pos, nil
}

func (c *FileCursor) Save(pos int64) error {
	tmp := c.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, []byte(strconv.FormatInt(pos, 10)), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
