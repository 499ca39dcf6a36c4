package storage

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"stagedesk/internal/shared/config"
	"stagedesk/internal/shared/logger"
)

// FileStore persists uploaded attachment content and yields the URL stored
// on the attachment record.
type FileStore interface {
	// Save writes the content and returns a URL the file can be served from.
	Save(ctx context.Context, ticketID uint, fileName string, content io.Reader) (string, error)
	// Remove deletes previously saved content. Unknown URLs are not an error.
	Remove(ctx context.Context, url string) error
}

// LocalFileStore writes attachment content under a root directory, one
// subdirectory per ticket. File names are prefixed with random bytes so
// repeated uploads of the same name never collide.
type LocalFileStore struct {
	rootDir       string
	publicBaseURL string
	logger        logger.Interface
}

func NewLocalFileStore(cfg *config.StorageConfig) (*LocalFileStore, error) {
	if cfg.RootDir == "" {
		return nil, fmt.Errorf("storage root directory is required")
	}
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	return &LocalFileStore{
		rootDir:       cfg.RootDir,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger.NewLogger().With("component", "storage.local"),
	}, nil
}

func (s *LocalFileStore) Save(ctx context.Context, ticketID uint, fileName string, content io.Reader) (string, error) {
	var randBytes [8]byte
	if _, err := rand.Read(randBytes[:]); err != nil {
		return "", fmt.Errorf("failed to generate file name prefix: %w", err)
	}

	safeName := filepath.Base(fileName)
	relPath := filepath.Join(fmt.Sprintf("tickets/%d", ticketID),
		hex.EncodeToString(randBytes[:])+"_"+safeName)
	fullPath := filepath.Join(s.rootDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write attachment content: %w", err)
	}

	url := s.publicBaseURL + "/" + filepath.ToSlash(relPath)
	s.logger.Debugw("attachment stored", "path", relPath, "ticket_id", ticketID)
	return url, nil
}

func (s *LocalFileStore) Remove(ctx context.Context, url string) error {
	if strings.HasPrefix(url, "data:") {
		return nil
	}

	relPath := strings.TrimPrefix(url, s.publicBaseURL+"/")
	if relPath == url && s.publicBaseURL != "" {
		// URL was not produced by this store.
		return nil
	}

	fullPath := filepath.Join(s.rootDir, filepath.FromSlash(relPath))
	if !strings.HasPrefix(filepath.Clean(fullPath), filepath.Clean(s.rootDir)) {
		return fmt.Errorf("attachment path escapes storage root")
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment file: %w", err)
	}
	return nil
}

// InlineFileStore encodes content into a data URL stored directly on the
// attachment row. Used when no storage root is configured; attachments
// carry the inline flag so handlers know there is no file to serve.
type InlineFileStore struct{}

func NewInlineFileStore() *InlineFileStore {
	return &InlineFileStore{}
}

func (s *InlineFileStore) Save(ctx context.Context, ticketID uint, fileName string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read attachment content: %w", err)
	}
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *InlineFileStore) Remove(ctx context.Context, url string) error {
	// Nothing stored outside the row.
	return nil
}
