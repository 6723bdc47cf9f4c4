package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const (
	// DefaultContextKey is where verified claims are stored in the router context
	DefaultContextKey = "session"
	// DefaultAuthScheme is the bearer prefix expected in the Authorization header
	DefaultAuthScheme = "Bearer"
)

// RouteAuthenticator guards protected routes. On every request it verifies
// the bearer token, then re-checks the live account status and role against
// the store before the request proceeds; the role embedded in the token is
// trusted only as of issuance time.
type RouteAuthenticator struct {
	service      *SessionService
	repo         RepositoryManager
	contextKey   string
	authScheme   string
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

func NewHTTPAuthenticator(service *SessionService, cfg Config) (*RouteAuthenticator, error) {
	if service == nil {
		return nil, errors.New("http authenticator requires a session service", errors.CategoryBadInput)
	}

	contextKey := cfg.GetContextKey()
	if contextKey == "" {
		contextKey = DefaultContextKey
	}

	authScheme := cfg.GetAuthScheme()
	if authScheme == "" {
		authScheme = DefaultAuthScheme
	}

	a := &RouteAuthenticator{
		service:    service,
		repo:       service.repo,
		contextKey: contextKey,
		authScheme: authScheme,
		Logger:     defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// ContextKey returns the locals key under which claims are stored
func (a *RouteAuthenticator) ContextKey() string {
	return a.contextKey
}

// ProtectedRoute returns middleware that admits only requests carrying a
// valid bearer token whose account is still active and whose live role
// satisfies minRole.
func (a *RouteAuthenticator) ProtectedRoute(minRole Role) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw, err := a.tokenFromHeader(ctx)
			if err != nil {
				return a.ErrorHandler(ctx, err)
			}

			claims, err := a.service.TokenService().Validate(raw)
			if err != nil {
				return a.ErrorHandler(ctx, err)
			}

			account, err := a.repo.Accounts().GetByID(ctx.Context(), claims.UserID())
			if err != nil {
				a.Logger.Warn("protected route could not load account", "subject", claims.UserID(), "error", err)
				return a.ErrorHandler(ctx, ErrInvalidCredentials)
			}

			account.EnsureStatus()
			if err := CanAccessResource(account.Role, account.Status, minRole); err != nil {
				return a.ErrorHandler(ctx, err)
			}

			ctx.Locals(a.contextKey, claims)

			return hf(ctx)
		}
	}
}

// tokenFromHeader extracts the bearer credential. A missing header or a
// malformed scheme prefix means absent credentials, not a malformed token.
// The scheme must be followed by a space: a glued "Bearer<token>" header is
// not a credential.
func (a *RouteAuthenticator) tokenFromHeader(ctx router.Context) (string, error) {
	header := ctx.GetString(router.HeaderAuthorization, "")
	if header == "" {
		return "", ErrMissingCredentials
	}

	l := len(a.authScheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], a.authScheme) || header[l] != ' ' {
		return "", ErrMissingCredentials
	}

	token := strings.TrimSpace(header[l+1:])
	if token == "" {
		return "", ErrMissingCredentials
	}

	return token, nil
}

func (a *RouteAuthenticator) defaultErrHandler(ctx router.Context, err error) error {
	status, payload := errorResponse(err)
	return ctx.JSON(status, payload)
}

// errorResponse maps the error taxonomy onto HTTP statuses and a JSON
// envelope that never leaks internal error types.
func errorResponse(err error) (int, map[string]any) {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return router.StatusInternalServerError, map[string]any{
			"error": "internal error",
		}
	}

	status := router.StatusInternalServerError
	if richErr.Code != 0 {
		status = int(richErr.Code)
	} else {
		switch richErr.Category {
		case errors.CategoryValidation, errors.CategoryBadInput:
			status = router.StatusBadRequest
		case errors.CategoryAuth:
			status = router.StatusUnauthorized
		case errors.CategoryNotFound:
			status = router.StatusNotFound
		case errors.CategoryConflict:
			status = router.StatusConflict
		}
	}

	payload := map[string]any{
		"error": richErr.Message,
	}
	if richErr.TextCode != "" {
		payload["code"] = richErr.TextCode
	}

	return status, payload
}
