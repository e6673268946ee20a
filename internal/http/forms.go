package httpx

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/target/storefront-admin/internal/domain/model"
)

const (
	// maxUploadMemory is how much of a multipart body is kept in memory;
	// the rest spills to temporary files.
	maxUploadMemory = 10 << 20
	// maxUploadBytes caps a single uploaded image.
	maxUploadBytes = 5 << 20
)

// parseForm parses urlencoded and multipart bodies alike.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return fmt.Errorf("parse multipart form: %w", err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return nil
}

func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// formBool reads a checkbox. Unchecked boxes are absent from the body.
func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(formString(r, key)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// formInt reads an optional whole number; blank and malformed values yield
// fallback. Validation reports malformed input separately.
func formInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(formString(r, key))
	if err != nil {
		return fallback
	}
	return n
}

// formIDPtr reads an optional foreign key select; blank means none.
func formIDPtr(r *http.Request, key string) *int64 {
	id, err := strconv.ParseInt(formString(r, key), 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// formIDs reads a multi-value id field (multi-select or checkboxes),
// dropping blanks, malformed values and duplicates.
func formIDs(r *http.Request, key string) []int64 {
	if r.PostForm == nil {
		return nil
	}
	raw := r.PostForm[key]
	out := make([]int64, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// formUpload reads one optional image file. A missing file returns nil and
// no error; anything that is not an image, or too large, is a field error.
func formUpload(r *http.Request, field string) (*model.Upload, string) {
	if r.MultipartForm == nil {
		return nil, ""
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 || headers[0].Filename == "" {
		return nil, ""
	}
	up, msg := readUpload(field, headers[0])
	if msg != "" {
		return nil, msg
	}
	return &up, ""
}

// formUploads reads every file sent under field.
func formUploads(r *http.Request, field string) ([]model.Upload, string) {
	if r.MultipartForm == nil {
		return nil, ""
	}
	var out []model.Upload
	for _, fh := range r.MultipartForm.File[field] {
		if fh.Filename == "" {
			continue
		}
		up, msg := readUpload(field, fh)
		if msg != "" {
			return nil, msg
		}
		out = append(out, up)
	}
	return out, ""
}

func readUpload(field string, fh *multipart.FileHeader) (model.Upload, string) {
	if fh.Size > maxUploadBytes {
		return model.Upload{}, fmt.Sprintf("%s is larger than %d MB.", fh.Filename, maxUploadBytes>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return model.Upload{}, "Unable to read " + fh.Filename + "."
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return model.Upload{}, "Unable to read " + fh.Filename + "."
	}
	if len(data) > maxUploadBytes {
		return model.Upload{}, fmt.Sprintf("%s is larger than %d MB.", fh.Filename, maxUploadBytes>>20)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return model.Upload{}, fh.Filename + " is not an image."
	}
	return model.Upload{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, ""
}
