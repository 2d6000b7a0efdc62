package media

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// Upload is one file received with a profile update.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ValidateExtension rejects files whose extension is not an accepted image or document type.
func ValidateExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFile, filename)
	}
	return nil
}

// ObjectName builds a collision resistant storage name:
// <field>-<unix millis>-<slugged base name><ext>.
func ObjectName(field, filename string, now time.Time) string {
	base := filepath.Base(strings.TrimSpace(filename))
	ext := strings.ToLower(filepath.Ext(base))
	stem := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "file"
	}
	field = slug.Make(field)
	if field == "" {
		field = "upload"
	}
	return fmt.Sprintf("%s-%d-%s%s", field, now.UnixMilli(), stem, ext)
}
