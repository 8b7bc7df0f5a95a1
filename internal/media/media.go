// Package media stores uploaded product images and hands back public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Store persists an image and returns the URL it is served from.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// objectName prefixes the client file name with a timestamp so uploads never collide
// and strips any directory components the client sent.
func objectName(filename string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d-%s", now.UnixNano(), base)
}
