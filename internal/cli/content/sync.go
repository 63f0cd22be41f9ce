// Package content uploads tenant branding files to the custom content
// store, one-shot or continuously from a watched directory.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/tresorit/zerokit-admin-go/pkg/adminapi"
)

// UploadPath is the custom content endpoint; the remote file name travels
// in the fileName query parameter.
const UploadPath = "/api/v4/admin/tenant/upload-custom-content"

// Uploader pushes local files to the tenant's custom content store. It
// throttles itself so a directory sync cannot flood the admin API.
type Uploader struct {
	client  *adminapi.Client
	logger  *slog.Logger
	limiter *rate.Limiter
}

// UploaderOption customizes an Uploader.
type UploaderOption func(*Uploader)

// WithRateLimit replaces the default upload throttle.
func WithRateLimit(limit rate.Limit, burst int) UploaderOption {
	return func(u *Uploader) {
		u.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewUploader builds an Uploader on the given client. The default
// throttle allows four uploads per second with a burst of eight.
func NewUploader(client *adminapi.Client, logger *slog.Logger, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		client:  client,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadFile uploads one local file under the given remote name.
func (u *Uploader) UploadFile(ctx context.Context, path, name string) error {
	if err := u.limiter.Wait(ctx); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", path, err)
	}

	_, err = u.client.NewRequest(http.MethodPut, UploadPath).
		AddQuery("fileName", name).
		SetHeader(adminapi.HeaderContentType, TypeByName(name)).
		SetContents(data).
		Send(ctx)
	if err != nil {
		return fmt.Errorf("content: upload %s: %w", name, err)
	}

	u.logger.Info("uploaded custom content", "file", name, "bytes", len(data))
	return nil
}

// SyncDir uploads every regular file under dir, using slash-separated
// paths relative to dir as remote names. Hidden files and directories are
// skipped. Returns the number of files uploaded.
func (u *Uploader) SyncDir(ctx context.Context, dir string) (int, error) {
	uploaded := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if err := u.UploadFile(ctx, path, filepath.ToSlash(rel)); err != nil {
			return err
		}
		uploaded++
		return nil
	})
	if err != nil {
		return uploaded, fmt.Errorf("content: sync %s: %w", dir, err)
	}
	return uploaded, nil
}

// TypeByName maps a remote file name to its media type, defaulting to
// application/octet-stream for unknown extensions.
func TypeByName(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
