// Package localfs implements the filestore.FileStore interface on the
// local filesystem.
package localfs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hrsys/candidate-api/internal/config"
	"github.com/hrsys/candidate-api/internal/domain"
	"github.com/hrsys/candidate-api/internal/filestore"
)

// maxSlugLength bounds the sanitized filename stem.
const maxSlugLength = 40

// FileStore stores resumes under a base directory with structured
// per-candidate paths and resolves references against a base URL.
type FileStore struct {
	baseDir string
	baseURL string
	logger  *slog.Logger
}

// New creates a local FileStore from the storage configuration. A nil
// logger falls back to the default.
func New(cfg config.StorageConfig, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		baseDir: cfg.ResumeDir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger.With(slog.String("component", "filestore")),
	}
}

var _ filestore.FileStore = (*FileStore)(nil)

// Save implements filestore.FileStore.Save. References take the form
// resumes/{department}/{candidate id}/{slug}_{timestamp}{ext} so files
// are unique, safe, and grouped by candidate.
func (s *FileStore) Save(
	ctx context.Context,
	department domain.Department,
	candidateID uuid.UUID,
	filename string,
	content io.Reader,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := path.Ext(filename)
	stem := slugify(strings.TrimSuffix(path.Base(filename), ext))
	timestamp := time.Now().UTC().Format("20060102150405")
	ref := path.Join("resumes", string(department), candidateID.String(),
		fmt.Sprintf("%s_%s%s", stem, timestamp, ext))

	dst := filepath.Join(s.baseDir, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create resume directory: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create resume file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("failed to close resume file", slog.String("error", err.Error()))
		}
	}()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write resume file: %w", err)
	}

	s.logger.Info("resume stored",
		slog.String("candidate_id", candidateID.String()),
		slog.String("ref", ref))
	return ref, nil
}

// URL implements filestore.FileStore.URL.
func (s *FileStore) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return s.baseURL + "/" + ref
}

// Remove implements filestore.FileStore.Remove.
func (s *FileStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ref == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(ref))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove resume file: %w", err)
	}
	return nil
}

// slugify lowercases the stem, turns spaces into underscores, keeps
// only alphanumerics, underscores and hyphens, and truncates.
func slugify(stem string) string {
	stem = strings.ReplaceAll(strings.ToLower(stem), " ", "_")
	var b strings.Builder
	for _, r := range stem {
		if r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > maxSlugLength {
		out = out[:maxSlugLength]
	}
	if out == "" {
		out = "resume"
	}
	return out
}
