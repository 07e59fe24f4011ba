package internal

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// maxMultipartMemory bounds in-memory buffering of a single uploaded part.
const maxMultipartMemory = 32 << 20 // 32MB

// UploadedFile is a file received in a multipart form. A lookup miss yields
// a sentinel with an empty Filename rather than an error.
type UploadedFile struct {
	// Filename is the client-supplied file name; empty for the sentinel.
	Filename string

	// Field is the form field the file arrived under.
	Field string

	// Header carries the part's MIME headers.
	Header textproto.MIMEHeader

	// Data is the full file content.
	Data []byte
}

// Exists reports whether the file was actually uploaded.
func (f *UploadedFile) Exists() bool {
	return f.Filename != ""
}

// parseQuery flattens a raw query string into a key→value map with
// last-value-wins semantics on duplicate keys.
func parseQuery(rawQuery string) map[string]string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Best effort: url.ParseQuery returns whatever it could parse.
		_ = err
	}
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}

// readBody drains and returns the request body. The caller caches the
// result; the underlying stream is consumed.
func readBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxMultipartMemory))
	if err != nil {
		return nil
	}
	return body
}

// parseJSONBody decodes body as a JSON object. An empty or unparseable body
// yields an empty map, never an error — the validation flow depends on this
// leniency.
func parseJSONBody(body []byte) map[string]any {
	if len(body) == 0 {
		return map[string]any{}
	}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil || parsed == nil {
		return map[string]any{}
	}
	return parsed
}

// parseFiles extracts uploaded files from a multipart body. Returns an
// empty map for non-multipart or malformed bodies.
func parseFiles(contentType string, body []byte) map[string]*UploadedFile {
	files := make(map[string]*UploadedFile)

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return files
	}
	boundary := params["boundary"]
	if boundary == "" {
		return files
	}

	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		if part.FileName() == "" {
			part.Close()
			continue
		}

		data, err := io.ReadAll(io.LimitReader(part, maxMultipartMemory))
		part.Close()
		if err != nil {
			continue
		}

		field := part.FormName()
		// First file per field wins.
		if _, ok := files[field]; ok {
			continue
		}
		files[field] = &UploadedFile{
			Filename: part.FileName(),
			Field:    field,
			Header:   part.Header,
			Data:     data,
		}
	}
	return files
}
