package backend

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "transcribe-ui/internal/app/errors"
)

// sniffLen is how much of a file is inspected when no content type is known
const sniffLen = 3072

// audioTypes covers the formats the transcription service is usually fed;
// the stdlib extension table does not know most of them
var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".webm": "audio/webm",
	".aac":  "audio/aac",
}

// File is an audio file staged for upload
type File struct {
	Name        string
	ContentType string
	Size        int64

	open func() (io.ReadCloser, error)
}

// FileFromPath stages a file from disk
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, apperrors.Wrap(apperrors.ErrFileNotFound, path)
		}
		return File{}, apperrors.Wrap(err, apperrors.ErrFileReadFailed.Error())
	}
	if info.IsDir() {
		return File{}, apperrors.InvalidField(path, "is a directory")
	}

	return File{
		Name: filepath.Base(path),
		Size: info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FileFromBytes stages an in-memory file, e.g. one received from a browser form
func FileFromBytes(name, contentType string, data []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Open returns a fresh reader over the file contents
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, apperrors.Wrap(apperrors.ErrFileReadFailed, f.Name)
	}
	return f.open()
}

// resolveContentType picks the part type: explicit, then sniffed, then by extension
func resolveContentType(f File, head []byte) string {
	if ct := strings.TrimSpace(f.ContentType); ct != "" && ct != "application/octet-stream" {
		return ct
	}

	detected := mimetype.Detect(head)
	if !isGeneric(detected) {
		return detected.String()
	}

	ext := strings.ToLower(filepath.Ext(f.Name))
	if ct, ok := audioTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}

	return detected.String()
}

func isGeneric(m *mimetype.MIME) bool {
	return m.Is("application/octet-stream") || m.Is("text/plain")
}
