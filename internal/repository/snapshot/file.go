package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	trackerdomain "money-tracker-go/internal/domain/tracker"
)

// FileStore keeps one JSON file per profile under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(ctx context.Context, profileID string) (trackerdomain.Snapshot, error) {
	path, err := s.path(profileID)
	if err != nil {
		return trackerdomain.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return trackerdomain.Snapshot{}, trackerdomain.ErrSnapshotNotFound
		}
		return trackerdomain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return trackerdomain.Snapshot{}, trackerdomain.ErrSnapshotNotFound
	}

	var snapshot trackerdomain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return trackerdomain.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Version > trackerdomain.SnapshotVersion {
		return trackerdomain.Snapshot{}, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	if snapshot.ProfileID != profileID {
		return trackerdomain.Snapshot{}, fmt.Errorf("snapshot belongs to profile %q", snapshot.ProfileID)
	}
	snapshot.Records = snapshot.Records.Normalize()
	return snapshot, nil
}

func (s *FileStore) Save(ctx context.Context, snapshot trackerdomain.Snapshot) error {
	path, err := s.path(snapshot.ProfileID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write temp snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) path(profileID string) (string, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" || strings.ContainsAny(profileID, `/\`) || strings.HasPrefix(profileID, ".") {
		return "", fmt.Errorf("invalid profile id %q", profileID)
	}
	return filepath.Join(s.dir, profileID+".json"), nil
}
