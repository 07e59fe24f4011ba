package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzy-go/jazzy/pkg/validator"
)

const testSecret = "test-secret-for-app-tests"

func serve(t *testing.T, app *App, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestAppDispatch(t *testing.T) {
	t.Parallel()

	t.Run("static route served", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/ping", func(c Context) error {
			return c.Text("pong")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("path parameter reaches handler", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/users/:id", func(c Context) error {
			return c.Text(c.Param("id"))
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/users/42", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "42", rec.Body.String())
	})

	t.Run("miss is a plain text 404", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/ping", func(c Context) error { return c.Text("pong") })

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "404 page not found", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("global middleware observes misses too", func(t *testing.T) {
		t.Parallel()

		var seen []string
		app := New(
			WithSecret(testSecret),
			WithMiddleware(func(next HandlerFunc) HandlerFunc {
				return func(c Context) error {
					err := next(c)
					seen = append(seen, c.Path(), http.StatusText(c.Response().Status()))
					return err
				}
			}),
		)

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, []string{"/nowhere", "Not Found"}, seen)
	})

	t.Run("last body call wins", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/double", func(c Context) error {
			if err := c.JSON(map[string]string{"first": "body"}); err != nil {
				return err
			}
			return c.Text("second body")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/double", nil))
		assert.Equal(t, "second body", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("default response is 200 html", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/empty", func(c Context) error { return nil })

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/empty", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, ContentTypeHTML, rec.Header().Get("Content-Type"))
	})

	t.Run("registering after first request panics", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/ping", func(c Context) error { return c.Text("pong") })
		serve(t, app, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Panics(t, func() {
			app.GET("/late", func(c Context) error { return nil })
		})
	})
}

func TestAppErrorBoundary(t *testing.T) {
	t.Parallel()

	t.Run("validation failure renders a 422 report", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.POST("/users", func(c Context) error {
			if err := c.Validate(validator.Rules{
				"name":  "required|string|min:3",
				"email": "required|string",
			}); err != nil {
				return err
			}
			return c.NoContent(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"ab"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(t, app, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		fields, ok := body["errors"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
	})

	t.Run("valid body passes through", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.POST("/users", func(c Context) error {
			if err := c.Validate(validator.Rules{"name": "required|string|min:3"}); err != nil {
				return err
			}
			return c.NoContent(http.StatusCreated)
		})

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"alice"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(t, app, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("malformed json body counts as empty input", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.POST("/users", func(c Context) error {
			if err := c.Validate(validator.Rules{"name": "required"}); err != nil {
				return err
			}
			return nil
		})

		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(t, app, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		assert.Contains(t, body["errors"].(map[string]any), "name")
	})

	t.Run("http error keeps its status", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/secret", func(c Context) error {
			return ErrUnauthorized("login required")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/secret", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		assert.Equal(t, "login required", body["error"])
	})

	t.Run("wrapped http error is still recognized", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/wrapped", func(c Context) error {
			return errors.Join(errors.New("context"), ErrNotFound("no such thing"))
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/wrapped", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown error shows message in development", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret), WithEnv(EnvDevelopment))
		app.GET("/boom", func(c Context) error {
			return errors.New("database exploded")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		assert.Equal(t, "database exploded", body["error"])
	})

	t.Run("unknown error is generic in production", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret), WithEnv(EnvProduction))
		app.GET("/boom", func(c Context) error {
			return errors.New("database exploded")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		assert.Equal(t, "Internal Server Error", body["error"])
	})

	t.Run("panic is converted at the same boundary", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret), WithEnv(EnvProduction))
		app.GET("/panic", func(c Context) error {
			panic("unexpected")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		assert.Equal(t, "Internal Server Error", body["error"])
	})

	t.Run("error discards partial body", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret))
		app.GET("/partial", func(c Context) error {
			if err := c.Text("partial output"); err != nil {
				return err
			}
			return ErrConflict("state changed")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/partial", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		assert.Equal(t, "state changed", body["error"])
	})

	t.Run("custom error handler takes precedence", func(t *testing.T) {
		t.Parallel()

		app := New(
			WithSecret(testSecret),
			WithErrorHandler(func(c Context, err error) error {
				return c.Status(http.StatusTeapot).JSON(map[string]string{"custom": err.Error()})
			}),
		)
		app.GET("/boom", func(c Context) error {
			return errors.New("handled elsewhere")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		body := decodeJSON(t, rec.Body.String())
		assert.Equal(t, "handled elsewhere", body["custom"])
	})

	t.Run("custom error handler can fall through", func(t *testing.T) {
		t.Parallel()

		app := New(
			WithSecret(testSecret),
			WithErrorHandler(func(c Context, err error) error {
				return err
			}),
		)
		app.GET("/secret", func(c Context) error {
			return ErrForbidden("nope")
		})

		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/secret", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAppAuthFlow(t *testing.T) {
	t.Parallel()

	newAuthApp := func() *App {
		app := New(WithSecret(testSecret))
		app.POST("/login", func(c Context) error {
			tok, err := c.Login(map[string]any{"id": int64(7), "name": "alice"})
			if err != nil {
				return err
			}
			return c.JSON(map[string]string{"token": tok})
		})
		app.GET("/me", func(c Context) error {
			if !c.Check() {
				return ErrUnauthorized("login required")
			}
			return c.JSON(map[string]any{"id": c.ID(), "name": c.User().String("name")})
		})
		return app
	}

	t.Run("login issues a usable token", func(t *testing.T) {
		t.Parallel()

		app := newAuthApp()
		rec := serve(t, app, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		tok := decodeJSON(t, rec.Body.String())["token"].(string)
		require.NotEmpty(t, tok)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec = serve(t, app, req)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeJSON(t, rec.Body.String())
		assert.Equal(t, float64(7), body["id"])
		assert.Equal(t, "alice", body["name"])
	})

	t.Run("missing token yields unauthenticated state", func(t *testing.T) {
		t.Parallel()

		app := newAuthApp()
		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered token yields unauthenticated state", func(t *testing.T) {
		t.Parallel()

		app := newAuthApp()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := serve(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAppHandlers(t *testing.T) {
	t.Parallel()

	t.Run("handlers registered via option", func(t *testing.T) {
		t.Parallel()

		app := New(WithSecret(testSecret), WithHandlers(pingHandler{}))
		rec := serve(t, app, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})
}

type pingHandler struct{}

func (pingHandler) Routes(r Router) {
	r.GET("/ping", func(c Context) error {
		return c.Text("pong")
	})
}
