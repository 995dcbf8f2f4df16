package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"brandforge/internal/domain"
)

// FileStore lays an asset package out on disk: one image per asset under
// <type>/<name>.<ext>, package.json at the root, and, when attempts are kept,
// every generated attempt under <type>/<name>/attempt_<n>.<ext>.
type FileStore struct {
	root     string
	attempts bool
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithAttempts also writes the image of every iteration, not just the final one.
func WithAttempts() FileStoreOption {
	return func(s *FileStore) { s.attempts = true }
}

// NewFileStore creates root if needed.
func NewFileStore(root string, opts ...FileStoreOption) (*FileStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage: output directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create output directory: %w", err)
	}
	s := &FileStore{root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the output directory.
func (s *FileStore) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// AttemptKey returns where an iteration's image goes when attempts are kept.
func AttemptKey(a domain.GeneratedAsset, it domain.AssetIteration) string {
	return path.Join(string(a.Type), a.Name, fmt.Sprintf("attempt_%d.%s", it.Number, extension(it.Image)))
}

// WriteAsset stores the asset's final image and, with WithAttempts, the image
// of each attempt that produced one. It returns the written keys.
func (s *FileStore) WriteAsset(ctx context.Context, a domain.GeneratedAsset) ([]string, error) {
	if a.Image == nil || len(a.Image.Data) == 0 {
		return nil, fmt.Errorf("storage: asset %s has no image", a.Name)
	}
	key, err := s.put(ctx, AssetKey(a), a.Image.Data)
	if err != nil {
		return nil, err
	}
	keys := []string{key}
	if !s.attempts {
		return keys, nil
	}
	for _, it := range a.IterationHistory {
		if it.Image == nil || len(it.Image.Data) == 0 {
			continue
		}
		key, err := s.put(ctx, AttemptKey(a, it), it.Image.Data)
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// WriteManifest stores package.json.
func (s *FileStore) WriteManifest(ctx context.Context, pkg *domain.AssetPackage) (string, error) {
	data, err := Manifest(pkg)
	if err != nil {
		return "", err
	}
	return s.put(ctx, ManifestName, data)
}

// SavePackage writes every asset followed by the manifest and returns the keys
// written so far, also on error.
func (s *FileStore) SavePackage(ctx context.Context, pkg *domain.AssetPackage) ([]string, error) {
	if pkg == nil {
		return nil, errors.New("storage: nil package")
	}
	var keys []string
	for _, a := range pkg.Assets {
		if a.Image == nil || len(a.Image.Data) == 0 {
			continue
		}
		written, err := s.WriteAsset(ctx, a)
		keys = append(keys, written...)
		if err != nil {
			return keys, err
		}
	}
	key, err := s.WriteManifest(ctx, pkg)
	if err != nil {
		return keys, err
	}
	return append(keys, key), nil
}

// put writes data through a temporary file so a reader never sees a partial
// image. Keys must stay inside the root.
func (s *FileStore) put(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("storage: key %q escapes the output directory", key)
	}
	full := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".partial-*")
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: chmod %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: finalize %s: %w", key, err)
	}
	return filepath.ToSlash(filepath.Clean(rel)), nil
}
