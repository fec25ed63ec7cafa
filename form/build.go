package form

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, `\"`)

// Build assembles fields into a multipart/form-data body, preserving field
// order, and returns the body together with its content type.
func Build(fields []Field) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range fields {
		if f.File == nil {
			if err := w.WriteField(f.Name, f.Value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
			}
			continue
		}

		filename := f.File.Name
		if filename == "" {
			// File parts require a filename
			filename = "upload-" + uuid.NewString()
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Name), quoteEscaper.Replace(filename)))
		contentType := f.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Name, err)
		}
		if f.File.Reader != nil {
			if _, err := io.Copy(part, f.File.Reader); err != nil {
				return nil, "", fmt.Errorf("copy file %s: %w", f.Name, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
