package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Archiver keeps a copy of every accepted readings upload.
type Archiver struct {
	store  Storage
	logger zerolog.Logger
	now    func() time.Time
}

// NewArchiver creates an archiver on top of store.
func NewArchiver(store Storage, logger *zerolog.Logger) *Archiver {
	return &Archiver{
		store:  store,
		logger: logger.With().Str("component", "archive").Logger(),
		now:    time.Now,
	}
}

// BuildUploadKey builds the storage key for an upload. Identical content
// uploaded by the same session on the same day maps to the same key.
func BuildUploadKey(sessionID string, at time.Time, checksum, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		name = "upload"
	}
	if len(checksum) > 12 {
		checksum = checksum[:12]
	}
	return fmt.Sprintf("uploads/%s/%s/%s-%s", sessionID, at.UTC().Format("2006-01-02"), checksum, name)
}

// Archive stores content unless an identical upload is already archived,
// and returns its key.
func (a *Archiver) Archive(ctx context.Context, filename string, content []byte, meta Metadata) (string, error) {
	if meta.UploadedAt.IsZero() {
		meta.UploadedAt = a.now()
	}
	key := BuildUploadKey(meta.SessionID, meta.UploadedAt, ComputeChecksum(content), filename)
	meta.OriginalName = filename

	exists, err := a.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("check archive: %w", err)
	}
	if exists {
		a.logger.Debug().Str("key", key).Msg("Upload already archived")
		return key, nil
	}

	if err := a.store.Put(ctx, key, content, &meta); err != nil {
		return "", fmt.Errorf("archive upload: %w", err)
	}
	a.logger.Info().
		Str("key", key).
		Int("size", len(content)).
		Str("session_id", meta.SessionID).
		Msg("Archived readings upload")
	return key, nil
}
