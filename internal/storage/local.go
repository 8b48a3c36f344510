package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hotiphone/storefront/internal/config"
)

// localDisk writes uploads to the filesystem under the directory the
// server also serves at /static/uploads.
type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk(cfg *config.Config) *localDisk {
	return &localDisk{
		root:    cfg.UploadDir,
		baseURL: strings.TrimRight(cfg.UploadBaseURL, "/"),
	}
}

func (d *localDisk) Put(_ context.Context, key string, r io.Reader) error {
	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	return nil
}

func (d *localDisk) URL(key string) string {
	return d.baseURL + "/" + key
}

func (d *localDisk) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(d.root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
