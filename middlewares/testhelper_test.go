package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jazzy-go/jazzy/internal"
)

// newApp builds a minimal application with the given global middleware and
// a couple of probe routes.
func newApp(mw ...internal.Middleware) *internal.App {
	app := internal.New(
		internal.WithSecret("middlewares-test-secret"),
		internal.WithMiddleware(mw...),
	)
	app.GET("/ok", func(c internal.Context) error {
		return c.Text("ok")
	})
	return app
}

func do(t *testing.T, app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
