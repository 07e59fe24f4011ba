package internal

// Handler declares routes on a router.
//
// Example:
//
//	type AuthHandler struct {
//	    users *repository.Users
//	}
//
//	func (h *AuthHandler) Routes(r jazzy.Router) {
//	    r.POST("/login", h.login)
//	    r.POST("/register", h.register)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// A returned *validator.Errors becomes a 422 response, a *HTTPError its own
// status code, anything else a 500 — all converted exactly once at the
// dispatch boundary.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing by
// not calling next, or run logic before and after the wrapped handler.
//
// Example:
//
//	func Guard(next jazzy.HandlerFunc) jazzy.HandlerFunc {
//	    return func(c jazzy.Context) error {
//	        if !c.Check() {
//	            return jazzy.ErrUnauthorized("login required")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error

// chain folds middleware around h right-to-left, so the first middleware in
// the list is outermost and observes the request first.
func chain(h HandlerFunc, mw ...Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] == nil {
			continue
		}
		h = mw[i](h)
	}
	return h
}
