package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/target/storefront-admin/internal/domain/model"
)

// Body is a request payload.
type Body interface {
	encode() (payload []byte, contentType string, err error)
}

type jsonBody struct{ v any }

// JSON encodes v as application/json.
func JSON(v any) Body { return jsonBody{v: v} }

func (b jsonBody) encode() ([]byte, string, error) {
	raw, err := json.Marshal(b.v)
	if err != nil {
		return nil, "", err
	}
	return raw, "application/json", nil
}

type multipartBody struct{ r model.MultipartRequest }

// Multipart encodes r as multipart/form-data with its text fields and uploads.
func Multipart(r model.MultipartRequest) Body { return multipartBody{r: r} }

func (b multipartBody) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range b.r.FormFields() {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	for _, up := range b.r.FormUploads() {
		if len(up.Data) == 0 {
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, up.Field, up.Filename))
		ct := up.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", up.Field, err)
		}
		if _, err := part.Write(up.Data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", up.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// BodyFor picks the encoding for a write request: multipart for requests
// that may carry files, JSON otherwise. A Body is used as is.
func BodyFor(req any) Body {
	switch r := req.(type) {
	case nil:
		return nil
	case Body:
		return r
	case model.MultipartRequest:
		return Multipart(r)
	default:
		return JSON(r)
	}
}

func encodeBody(b Body) ([]byte, string, error) {
	if b == nil {
		return nil, "", nil
	}
	return b.encode()
}
