package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes holds the mount points for the JSON API
type AuthControllerRoutes struct {
	Register    string
	Login       string
	Me          string
	AdminUsers  string
	AdminStatus string
}

// AuthController exposes the session service over a JSON API
type AuthController struct {
	Debug        bool
	Logger       Logger
	Service      SessionAuthenticator
	Routes       *AuthControllerRoutes
	Auther       *RouteAuthenticator
	ErrorHandler func(c router.Context, err error) error
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register:    "/auth/register",
			Login:       "/auth/login",
			Me:          "/auth/me",
			AdminUsers:  "/admin/users",
			AdminStatus: "/admin/users/:id/status",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing SessionAuthenticator in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in auth controller...")
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = c.Auther.defaultErrHandler
	}

	return c
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterAuthRoutes mounts the API. Admin routes are guarded twice: the
// protected-route middleware checks the acting caller's role, and the
// service separately rejects admin target roles.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost).
		SetName("auth.register")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")

	app.Get(controller.Routes.Me, controller.MeShow, controller.Auther.ProtectedRoute(RoleVolunteer)).
		SetName("auth.me")

	app.Post(controller.Routes.AdminUsers, controller.AdminCreatePost, controller.Auther.ProtectedRoute(RoleAdmin)).
		SetName("admin.users.create")

	app.Patch(controller.Routes.AdminStatus, controller.StatusPatch, controller.Auther.ProtectedRoute(RoleAdmin)).
		SetName("admin.users.status")
}

// RegisterRequest payload
type RegisterRequest struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	Role      string `form:"role" json:"role"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Language  string `form:"language" json:"language"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Role, validation.Required),
	)
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	if err := payload.Validate(); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	if a.Debug {
		a.Logger.Debug("register payload: %s", print.MaybePrettyJSON(payload))
	}

	role, ok := ParseRole(payload.Role)
	if !ok {
		return a.ErrorHandler(ctx, ErrInvalidRole)
	}

	account, err := a.Service.Register(ctx.Context(), RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		Role:      role,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Language:  payload.Language,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, account)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	if err := payload.Validate(); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	result, err := a.Service.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"token":      result.Token,
		"role":       result.Role,
		"expires_at": result.ExpiresAt,
		"expires_in": int64(result.ExpiresIn.Seconds()),
	})
}

func (a *AuthController) MeShow(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, a.Auther.ContextKey())
	if !ok {
		return a.ErrorHandler(ctx, ErrMissingCredentials)
	}

	account, err := a.Service.CurrentIdentity(ctx.Context(), claims.UserID())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, account)
}

// AdminCreateRequest payload
type AdminCreateRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     string `form:"role" json:"role"`
}

// Validate will run validation rules
func (r AdminCreateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
			validation.Field(&r.Role, validation.Required),
		)
	}, "invalid admin create payload")
}

func (a *AuthController) AdminCreatePost(ctx router.Context) error {
	payload := new(AdminCreateRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	if err := payload.Validate(); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	role, ok := ParseRole(payload.Role)
	if !ok {
		return a.ErrorHandler(ctx, ErrInvalidRole)
	}

	actor := ActorRef{Type: SystemActor}
	if claims, ok := GetRouterClaims(ctx, a.Auther.ContextKey()); ok {
		actor = ActorRef{ID: claims.UserID(), Type: "admin"}
	}

	account, err := a.Service.AdminCreateUser(ctx.Context(), AdminCreateInput{
		Email:    payload.Email,
		Password: payload.Password,
		Role:     role,
		Actor:    actor,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, account)
}

// StatusPatchRequest payload
type StatusPatchRequest struct {
	Status string `form:"status" json:"status"`
	Reason string `form:"reason" json:"reason"`
}

// Validate will run validation rules
func (r StatusPatchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required),
	)
}

func (a *AuthController) StatusPatch(ctx router.Context) error {
	payload := new(StatusPatchRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	if err := payload.Validate(); err != nil {
		return a.validationFailed(ctx, err.Error())
	}

	status, ok := ParseStatus(payload.Status)
	if !ok {
		return a.ErrorHandler(ctx, ErrInvalidStatus)
	}

	opts := []TransitionOption{}
	if claims, ok := GetRouterClaims(ctx, a.Auther.ContextKey()); ok {
		opts = append(opts, WithTransitionActor(ActorRef{ID: claims.UserID(), Type: "admin"}))
	}
	if payload.Reason != "" {
		opts = append(opts, WithTransitionReason(payload.Reason))
	}

	account, err := a.Service.UpdateStatus(ctx.Context(), ctx.Param("id"), status, opts...)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, account)
}

func (a *AuthController) validationFailed(ctx router.Context, detail string) error {
	return ctx.JSON(router.StatusBadRequest, map[string]any{
		"error": fmt.Sprintf("invalid request payload: %s", detail),
		"code":  "INVALID_PAYLOAD",
	})
}
