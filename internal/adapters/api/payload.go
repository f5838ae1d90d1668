package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/finhr/backoffice/internal/core/ports"
)

// encodePayload serializes a submission payload. Plain payloads become a
// JSON object; payloads carrying attachments become a multipart form where
// scalar fields are individual parts and each file travels under its indexed
// key.
func encodePayload(p ports.Payload) (body []byte, contentType string, err error) {
	if !p.Multipart {
		encoded, err := json.Marshal(p.Fields)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode payload: %w", err)
		}
		return encoded, "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range p.Fields {
		text, err := fieldText(value)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode field %q: %w", name, err)
		}
		if err := w.WriteField(name, text); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", name, err)
		}
	}
	for _, f := range p.Files {
		part, err := w.CreatePart(filePartHeader(f))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part %q: %w", f.FieldName, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write part %q: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// fieldText stringifies a scalar field for a multipart part. Strings pass
// through (the "details" field is already JSON-encoded by the form session);
// anything else is JSON-marshalled.
func fieldText(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func filePartHeader(f ports.FilePart) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(f.FieldName), escapeQuotes(f.FileName)))
	if f.ContentType != "" {
		h.Set("Content-Type", f.ContentType)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}
	return h
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, `\"`).Replace(s)
}
