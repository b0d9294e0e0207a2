// Package document performs the pre-flight checks on an uploaded PDF before
// it is sent to the extraction model. Only the declared media type and the
// byte length are checked; the PDF structure is never inspected.
package document

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/jonathan/profile-card/internal/config"
)

const mib = 1024 * 1024

// Upload is a submitted file as received from a multipart form or the CLI.
// A nil *Upload means no file was provided.
type Upload struct {
	Filename  string
	MediaType string
	// Size is the declared length. A negative value means unknown.
	Size int64
	Body io.Reader
}

// Document is an upload that passed validation.
type Document struct {
	Filename string
	Bytes    []byte
}

// Validator checks uploads against a media type and size limit.
type Validator struct {
	maxBytes  int64
	mediaType string
}

// NewValidator creates a Validator from the configured limits.
func NewValidator(limits config.Limits) *Validator {
	return &Validator{
		maxBytes:  limits.MaxFileSizeBytes,
		mediaType: limits.AcceptedMediaType,
	}
}

// Validate runs the checks in order (presence, media type, size) and returns
// the first failure as an *InvalidError. On success the body has been read in
// full exactly once.
func (v *Validator) Validate(upload *Upload) (*Document, error) {
	if upload == nil || upload.Body == nil {
		return nil, noFile()
	}

	if upload.MediaType != v.mediaType {
		return nil, wrongType(upload.MediaType)
	}

	if upload.Size > v.maxBytes {
		return nil, tooLarge(upload.Size, v.maxBytes)
	}

	// The declared size may be absent or wrong; never buffer past the limit.
	data, err := io.ReadAll(io.LimitReader(upload.Body, v.maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read upload")
	}
	if int64(len(data)) > v.maxBytes {
		size := upload.Size
		if size < int64(len(data)) {
			size = int64(len(data))
		}
		return nil, tooLarge(size, v.maxBytes)
	}

	return &Document{Filename: upload.Filename, Bytes: data}, nil
}

// Oversized returns the error for a body that overran the transport cap
// before the file part could be measured. size is the best known length.
func (v *Validator) Oversized(size int64) error {
	return tooLarge(size, v.maxBytes)
}

// OpenFile builds an Upload for a local file, inferring the media type from
// the extension. The caller must close the returned file.
func OpenFile(path string) (*Upload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}

	return &Upload{
		Filename:  filepath.Base(path),
		MediaType: mediaType,
		Size:      info.Size(),
		Body:      f,
	}, f, nil
}

func formatMB(bytes int64) string {
	return strconv.FormatFloat(float64(bytes)/mib, 'f', -1, 64)
}
