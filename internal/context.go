package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/jazzy-go/jazzy/pkg/sanitizer"
	"github.com/jazzy-go/jazzy/pkg/token"
	"github.com/jazzy-go/jazzy/pkg/validator"
)

// Context provides request/response access and helper methods for a single
// request. It also implements context.Context by delegating to the
// underlying request context.
//
// A Context is owned by one request and is not safe for use from other
// goroutines after the handler returns.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Method returns the request's HTTP method.
	Method() string

	// Path returns the request's URL path.
	Path() string

	// Param returns the URL parameter bound by a dynamic route segment.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name. Duplicate keys
	// resolve last-value-wins.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Input resolves a request input: query parameter first, then — when
	// the Content-Type contains application/json — the same-named
	// top-level field of the JSON body. A malformed JSON body counts as
	// absence, not an error.
	Input(name, defaultValue string) string

	// Header returns the request header value by name.
	Header(name string) string

	// Body returns the raw request body. Read once, cached.
	Body() []byte

	// BodyJSON returns the request body parsed as a JSON object. An empty
	// or unparseable body yields an empty map.
	BodyJSON() map[string]any

	// File returns an uploaded file by form field name. A miss returns a
	// sentinel with an empty Filename, never nil and never an error.
	File(name string) *UploadedFile

	// Validate checks the JSON body against the rule set. The returned
	// *validator.Errors should be bubbled with `return err` so the
	// dispatch boundary can render the 422 report.
	Validate(rules validator.Rules) error

	// Status sets the response status code. Returns the Context for
	// chaining; the code is not range-checked.
	Status(code int) Context

	// SetHeader sets a response header. Returns the Context for chaining.
	SetHeader(name, value string) Context

	// JSON serializes v as the response body. Last body call wins.
	JSON(v any) error

	// Text writes a plain-text response body. Last body call wins.
	Text(s string) error

	// HTML writes an HTML response body. Last body call wins.
	HTML(s string) error

	// Markdown renders markdown to sanitized HTML as the response body.
	Markdown(md string) error

	// NoContent clears the body and sets the given status code.
	NoContent(code int) error

	// Redirect responds with a Location header and the given status code.
	Redirect(code int, url string) error

	// Login signs a token for the principal claims and marks the request
	// authenticated. Returns the token for the client to store.
	Login(claims token.Claims) (string, error)

	// Logout clears the request's authentication state.
	Logout()

	// User returns the authenticated principal's claims, or nil.
	User() token.Claims

	// Check reports whether the request carries a valid bearer token or
	// Login was called.
	Check() bool

	// ID returns the principal's integer "id" claim, or 0.
	ID() int64

	// AuthToken returns the current bearer token, empty when logged out.
	AuthToken() string

	// Error creates an HTTPError without writing a response. Return it
	// from the handler to trigger the error boundary.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Set stores a value in the request context, retrievable via Get or
	// c.Value(key).
	Set(key, value any)

	// Get retrieves a value stored with Set. Returns nil if absent.
	Get(key any) any

	// Response returns the buffered response for advanced usage
	// (status/size inspection in middleware).
	Response() *Response

	// Logger returns the request logger.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)
}

// requestContext implements Context.
type requestContext struct {
	request  *http.Request
	response *Response
	auth     *AuthState
	logger   *slog.Logger

	params map[string]string

	// Lazily populated request caches.
	query      map[string]string
	body       []byte
	jsonBody   map[string]any
	files      map[string]*UploadedFile
	bodyRead   bool
	jsonParsed bool
}

// newContext builds the per-request context: buffered response with its
// defaults, and authentication state resolved from the bearer token.
func newContext(r *http.Request, tokens *token.Service, logger *slog.Logger) *requestContext {
	return &requestContext{
		request:  r,
		response: newResponse(),
		auth:     newAuthState(tokens, bearerToken(r)),
		logger:   logger,
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The prefix comparison is case-insensitive.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) < 8 || !strings.EqualFold(auth[:7], "bearer ") {
		return ""
	}
	return auth[7:]
}

// setParams installs path parameters after a successful dynamic match.
func (c *requestContext) setParams(params map[string]string) {
	c.params = params
}

// DetachResponse returns a copy of c that writes to its own response,
// seeded from the current response state. Middleware that may abandon a
// handler goroutine hands it the detached context: on completion the caller
// adopts the output with Response().CopyFrom; after abandonment late writes
// land in the detached response and never reach the wire.
//
// The returned Response is nil when c is not a framework context, in which
// case no detachment happened and c is returned as-is.
func DetachResponse(c Context) (Context, *Response) {
	rc, ok := c.(*requestContext)
	if !ok {
		return c, nil
	}
	detached := *rc
	detached.response = rc.response.clone()
	return &detached, detached.response
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Method() string {
	return c.request.Method
}

func (c *requestContext) Path() string {
	return c.request.URL.Path
}

func (c *requestContext) Param(name string) string {
	return c.params[name]
}

func (c *requestContext) Query(name string) string {
	if c.query == nil {
		c.query = parseQuery(c.request.URL.RawQuery)
	}
	return c.query[name]
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Input(name, defaultValue string) string {
	if c.query == nil {
		c.query = parseQuery(c.request.URL.RawQuery)
	}
	if v, ok := c.query[name]; ok {
		return v
	}

	if !strings.Contains(c.request.Header.Get("Content-Type"), "application/json") {
		return defaultValue
	}
	if v, ok := c.BodyJSON()[name]; ok {
		if s, ok := scalarString(v); ok {
			return s
		}
	}
	return defaultValue
}

// scalarString renders a JSON scalar for Input. Objects and arrays don't
// flatten to input values.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) Body() []byte {
	if !c.bodyRead {
		c.body = readBody(c.request)
		c.bodyRead = true
	}
	return c.body
}

func (c *requestContext) BodyJSON() map[string]any {
	if !c.jsonParsed {
		c.jsonBody = parseJSONBody(c.Body())
		c.jsonParsed = true
	}
	return c.jsonBody
}

func (c *requestContext) File(name string) *UploadedFile {
	if c.files == nil {
		c.files = parseFiles(c.request.Header.Get("Content-Type"), c.Body())
	}
	if f, ok := c.files[name]; ok {
		return f
	}
	return &UploadedFile{}
}

func (c *requestContext) Validate(rules validator.Rules) error {
	_, err := validator.Validate(c.BodyJSON(), rules)
	return err
}

func (c *requestContext) Status(code int) Context {
	c.response.SetStatus(code)
	return c
}

func (c *requestContext) SetHeader(name, value string) Context {
	c.response.Header().Set(name, value)
	return c
}

func (c *requestContext) JSON(v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.response.SetBody("application/json; charset=utf-8", body)
	return nil
}

func (c *requestContext) Text(s string) error {
	c.response.SetBody("text/plain; charset=utf-8", []byte(s))
	return nil
}

func (c *requestContext) HTML(s string) error {
	c.response.SetBody(ContentTypeHTML, []byte(s))
	return nil
}

func (c *requestContext) Markdown(md string) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return err
	}
	c.response.SetBody(ContentTypeHTML, []byte(sanitizer.SanitizeHTML(buf.String())))
	return nil
}

func (c *requestContext) NoContent(code int) error {
	c.response.SetStatus(code)
	c.response.SetBody(c.response.Header().Get("Content-Type"), nil)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	c.response.Header().Set("Location", url)
	c.response.SetStatus(code)
	return nil
}

func (c *requestContext) Login(claims token.Claims) (string, error) {
	return c.auth.Login(claims)
}

func (c *requestContext) Logout() {
	c.auth.Logout()
}

func (c *requestContext) User() token.Claims {
	return c.auth.User()
}

func (c *requestContext) Check() bool {
	return c.auth.Check()
}

func (c *requestContext) ID() int64 {
	return c.auth.ID()
}

func (c *requestContext) AuthToken() string {
	return c.auth.Token()
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Response() *Response {
	return c.response
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

// context.Context delegation.

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}
