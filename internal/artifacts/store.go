// Package artifacts uploads rendered reports to a blob store.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/deluair/BD-publicfinance-simulation/internal/config"
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
	"github.com/deluair/BD-publicfinance-simulation/internal/logfields"
	"github.com/deluair/BD-publicfinance-simulation/internal/report"
	"github.com/deluair/BD-publicfinance-simulation/internal/retry"
)

// Info describes a stored artifact.
type Info struct {
	Key         string `json:"key"`
	Size        int64  `json:"size_bytes"`
	ContentType string `json:"content_type,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Store is a minimal blob store. Put overwrites an existing key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() config.ArtifactDriver
}

// Open builds the store selected by cfg. The none driver yields a nil Store.
func Open(ctx context.Context, cfg config.ArtifactConfig) (Store, error) {
	switch cfg.Driver {
	case config.ArtifactFS:
		return NewFSStore(cfg.Root)
	case config.ArtifactS3:
		return NewS3Store(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			PathStyle: cfg.Endpoint != "",
		})
	case config.ArtifactNone, "":
		return nil, nil
	default:
		return nil, ferrors.ConfigError(fmt.Sprintf("unknown artifact driver %q", cfg.Driver)).Build()
	}
}

// sanitizeKey rejects keys that could escape the store root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("empty key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key %q", key)
	}
	clean := path.Clean(filepath.ToSlash(key))
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return clean, nil
}

var contentTypes = map[string]string{
	".csv":  "text/csv; charset=utf-8",
	".json": "application/json",
	".md":   "text/markdown; charset=utf-8",
	".html": "text/html; charset=utf-8",
}

func contentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Uploader copies report files into a Store under prefix/run-id/.
type Uploader struct {
	Store  Store
	Prefix string
	// Retry governs repeated attempts per file. The zero Policy tries once.
	Retry  retry.Policy
	Logger *slog.Logger
}

// Upload stores every artifact. Individual failures are joined and do not
// stop the remaining uploads.
func (u *Uploader) Upload(ctx context.Context, runID string, files []report.Artifact) ([]Info, error) {
	logger := u.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var (
		infos []Info
		errs  []error
	)
	for _, f := range files {
		key := path.Join(u.Prefix, runID, filepath.Base(f.Path))
		var info Info
		err := u.Retry.Do(ctx, func(ctx context.Context) error {
			var putErr error
			info, putErr = u.put(ctx, key, f.Path)
			return putErr
		})
		if err != nil {
			logger.Warn("Artifact upload failed", logfields.Path(f.Path), logfields.Error(err))
			errs = append(errs, ferrors.WrapError(err, ferrors.CategoryArtifact, "upload artifact").
				WithContext("key", key).
				WithContext("driver", string(u.Store.Driver())).
				Build())
			continue
		}
		logger.Info("Artifact uploaded", slog.String("key", info.Key), slog.String("driver", string(u.Store.Driver())))
		infos = append(infos, info)
	}
	return infos, errors.Join(errs...)
}

func (u *Uploader) put(ctx context.Context, key, src string) (Info, error) {
	f, err := os.Open(src)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	return u.Store.Put(ctx, key, f, contentType(src))
}
