package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

var profileIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// ValidProfileID reports whether id is usable as a snapshot key. File
// names are derived from it, so path separators and dot-dot are refused.
func ValidProfileID(id string) bool {
	return profileIDRe.MatchString(id) && id != "." && id != ".."
}

// FileSnapshotRepo stores each profile's snapshot as <dir>/<profile>.json.
// Writes go to a temp file in the same directory, are fsynced, then
// renamed over the target.
type FileSnapshotRepo struct {
	dir string
}

// NewFileSnapshotRepo creates dir if needed and returns a repo rooted there.
func NewFileSnapshotRepo(dir string) (*FileSnapshotRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileSnapshotRepo{dir: dir}, nil
}

func (r *FileSnapshotRepo) path(profileID string) (string, error) {
	if !ValidProfileID(profileID) {
		return "", fmt.Errorf("invalid profile id %q", profileID)
	}
	return filepath.Join(r.dir, profileID+".json"), nil
}

func (r *FileSnapshotRepo) Load(_ context.Context, profileID string) ([]byte, error) {
	p, err := r.path(profileID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

func (r *FileSnapshotRepo) Save(_ context.Context, profileID string, data []byte) error {
	p, err := r.path(profileID)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, "."+profileID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		cleanup()
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (r *FileSnapshotRepo) Delete(_ context.Context, profileID string) error {
	p, err := r.path(profileID)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
