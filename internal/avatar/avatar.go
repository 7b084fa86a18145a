// AngelaMos | 2026
// avatar.go

// Package avatar derives default avatar URLs and stores uploaded images.
package avatar

import (
	"context"
	"crypto/md5" //nolint:gosec // G501: gravatar addresses are md5 by protocol
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// GravatarURL returns the deterministic fallback avatar for an email.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized)) //nolint:gosec // G401: see above
	return fmt.Sprintf(
		"https://www.gravatar.com/avatar/%s?d=retro",
		hex.EncodeToString(sum[:]),
	)
}

// Store moves an uploaded file to durable storage and returns its public URL.
type Store interface {
	Save(
		ctx context.Context,
		userID, filename string,
		src io.Reader,
	) (string, error)
}

type DiskStore struct {
	dir        string
	publicPath string
}

func NewDiskStore(dir, publicPath string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}

	return &DiskStore{
		dir:        dir,
		publicPath: publicPath,
	}, nil
}

// Save writes the upload under a user-id-prefixed name so different users'
// files with the same original name cannot collide.
func (s *DiskStore) Save(
	_ context.Context,
	userID, filename string,
	src io.Reader,
) (string, error) {
	name := fmt.Sprintf("%s_%s", userID, sanitizeFilename(filename))
	dst := filepath.Join(s.dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()    //nolint:errcheck // cleanup on write failure
		_ = os.Remove(dst) //nolint:errcheck // cleanup on write failure
		return "", fmt.Errorf("write avatar file: %w", err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close avatar file: %w", err)
	}

	return path.Join(s.publicPath, name), nil
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) {
		return "avatar"
	}
	return name
}
