// internal/draft/file.go

package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"loan-wizard/internal/common/errors"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/common/metrics"
	"loan-wizard/internal/common/validation"
	"loan-wizard/internal/models"
)

const draftFileName = "formData.json"

// FileStore persists the draft as a single JSON document on local disk.
type FileStore struct {
	path string
	log  logger.Logger
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store rooted at dir. The directory is
// created if it does not exist.
func NewFileStore(dir string, log logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}
	return &FileStore{
		path: filepath.Join(dir, draftFileName),
		log:  log,
	}, nil
}

func (s *FileStore) Load(ctx context.Context) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Merge(ctx context.Context, partial models.Draft, drops ...models.Field) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return models.Draft{}, err
	}

	merged := current.Merge(partial, drops...)

	raw, err := json.Marshal(merged)
	if err != nil {
		return models.Draft{}, errors.NewStorageFailedError("failed to encode draft", err)
	}
	if err := s.writeAtomic(raw); err != nil {
		return models.Draft{}, errors.NewStorageFailedError("failed to persist draft", err)
	}

	metrics.DraftsPersisted.Inc()
	return merged, nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageFailedError("failed to clear draft", err)
	}
	return nil
}

// load reads and decodes the persisted record. Missing or corrupt data
// yields an empty draft so the wizard restarts cleanly.
func (s *FileStore) load() (models.Draft, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.Draft{}, nil
	}
	if err != nil {
		return models.Draft{}, errors.NewStorageFailedError("failed to read draft", err)
	}

	if err := validation.CheckDraftShape(raw); err != nil {
		s.log.Warn("Discarding corrupt draft", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return models.Draft{}, nil
	}

	var d models.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		s.log.Warn("Discarding undecodable draft", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
		return models.Draft{}, nil
	}
	return d, nil
}

// writeAtomic writes via a temp file and rename so a crash mid-write never
// leaves a truncated record behind.
func (s *FileStore) writeAtomic(raw []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
