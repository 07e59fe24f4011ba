package internal

import (
	"bytes"
	"net/http"
)

// ContentTypeHTML is the default response content type.
const ContentTypeHTML = "text/html; charset=utf-8"

// Response is the buffered reply for a single request. Handlers and
// middleware mutate it through the Context; the adapter writes it to the
// wire exactly once after the composed handler returns. Buffering is what
// makes "last body call wins" and post-handler error conversion possible.
type Response struct {
	header  http.Header
	body    bytes.Buffer
	status  int
	flushed bool
}

func newResponse() *Response {
	h := make(http.Header)
	h.Set("Content-Type", ContentTypeHTML)
	return &Response{
		header: h,
		status: http.StatusOK,
	}
}

// Status returns the current status code.
func (r *Response) Status() int {
	return r.status
}

// SetStatus sets the status code. No range validation is performed.
func (r *Response) SetStatus(code int) {
	r.status = code
}

// Header returns the response header map for direct mutation.
func (r *Response) Header() http.Header {
	return r.header
}

// SetBody replaces the body and content type. Each call discards the
// previous body, so the last writer wins.
func (r *Response) SetBody(contentType string, body []byte) {
	r.header.Set("Content-Type", contentType)
	r.body.Reset()
	r.body.Write(body)
}

// Body returns the current body bytes.
func (r *Response) Body() []byte {
	return r.body.Bytes()
}

// Size returns the number of buffered body bytes.
func (r *Response) Size() int64 {
	return int64(r.body.Len())
}

// Flushed reports whether the response has been written to the wire.
func (r *Response) Flushed() bool {
	return r.flushed
}

// clone returns a copy sharing no state with the original.
func (r *Response) clone() *Response {
	dst := &Response{
		header: make(http.Header, len(r.header)),
		status: r.status,
	}
	for k, vs := range r.header {
		dst.header[k] = append([]string(nil), vs...)
	}
	dst.body.Write(r.body.Bytes())
	return dst
}

// CopyFrom replaces the status, headers and body with src's. Used to adopt
// the output of a handler that ran against a detached response.
func (r *Response) CopyFrom(src *Response) {
	r.status = src.status
	r.header = make(http.Header, len(src.header))
	for k, vs := range src.header {
		r.header[k] = append([]string(nil), vs...)
	}
	r.body.Reset()
	r.body.Write(src.body.Bytes())
}

// flush writes status, headers and body to w. Repeated calls are no-ops.
func (r *Response) flush(w http.ResponseWriter) error {
	if r.flushed {
		return nil
	}
	r.flushed = true

	dst := w.Header()
	for k, vs := range r.header {
		dst[k] = vs
	}
	w.WriteHeader(r.status)
	_, err := w.Write(r.body.Bytes())
	return err
}
