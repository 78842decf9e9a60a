package fs

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/zerr"
)

// LockfileStore implements ports.LockfileStore on the local file system.
type LockfileStore struct{}

// NewLockfileStore creates a new LockfileStore.
func NewLockfileStore() *LockfileStore {
	return &LockfileStore{}
}

// Write stores the sigil line for hash followed by doc at path. The content is written to
// a temporary file in the same directory and renamed into place, so readers never observe
// a partial lockfile.
func (s *LockfileStore) Write(path string, hash domain.ContentHash, doc []byte) (err error) {
	fail := func(cause error) error {
		return domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(cause, domain.ErrLockWriteFailed.Error()), "path", path))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return fail(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fail(err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.WriteString(domain.EmbedHash(hash)); err != nil {
		return fail(err)
	}
	if _, err := tmp.Write(doc); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}
	return nil
}

// Read returns the hash carried by the lockfile at path and the rest of its content.
func (s *LockfileStore) Read(path string) (domain.ContentHash, []byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return "", nil, domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "path", path))
	}

	hash, doc, err := domain.StripSigil(data)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, "lockfile carries no hash"), "path", path)
	}
	return hash, doc, nil
}

// Discover returns every <spec>.<platform>.lock file next to specPath, sorted.
// A missing directory yields no lockfiles.
func (s *LockfileStore) Discover(specPath string) ([]string, error) {
	dir := filepath.Dir(specPath)
	prefix := filepath.Base(specPath) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.Tag(domain.ErrIO, zerr.With(zerr.Wrap(err, domain.ErrLockDiscoveryFailed.Error()), "dir", dir))
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || len(name) <= len(prefix)+len(domain.LockExt) {
			continue
		}
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, domain.LockExt) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	slices.Sort(paths)
	return paths, nil
}
