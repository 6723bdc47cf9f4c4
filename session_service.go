package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RegisterInput is the self registration payload.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Language  string `json:"language"`
}

// AdminCreateInput is the admin provisioning payload. Actor identifies the
// administrator performing the creation; their own privilege is checked
// upstream against the endpoint.
type AdminCreateInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Actor    ActorRef
}

// LoginResult carries the minted token along with the claims a client needs
// without decoding it.
type LoginResult struct {
	Token     string        `json:"token"`
	Role      Role          `json:"role"`
	ExpiresAt time.Time     `json:"expires_at"`
	ExpiresIn time.Duration `json:"expires_in"`
}

// SessionService orchestrates the credential verifier, account store,
// authorization engine, and token codec. It holds no mutable state beyond
// its collaborators; every method is safe for concurrent use.
type SessionService struct {
	repo         RepositoryManager
	tokenService TokenService
	profiles     ProfileCreator
	activitySink ActivitySink
	lifecycle    *AccountLifecycle
	logger       Logger
}

var _ SessionAuthenticator = (*SessionService)(nil)

// NewSessionService returns a new SessionService wired with a token codec
// built from the supplied configuration.
func NewSessionService(repo RepositoryManager, opts Config) *SessionService {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenTTL(),
		opts.GetIssuer(),
		jwt.ClaimStrings(opts.GetAudience()),
		defLogger{},
	)

	return &SessionService{
		repo:         repo,
		tokenService: tokenService,
		profiles:     noopProfileCreator{},
		activitySink: noopActivitySink{},
		lifecycle:    NewAccountLifecycle(repo.Accounts()),
		logger:       defLogger{},
	}
}

func (s *SessionService) WithLogger(logger Logger) *SessionService {
	s.logger = logger
	return s
}

// WithTokenService overrides the token codec, mostly useful in tests.
func (s *SessionService) WithTokenService(ts TokenService) *SessionService {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// WithProfileCreator configures the downstream profile collaborator.
func (s *SessionService) WithProfileCreator(pc ProfileCreator) *SessionService {
	s.profiles = normalizeProfileCreator(pc)
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *SessionService) WithActivitySink(sink ActivitySink) *SessionService {
	s.activitySink = normalizeActivitySink(sink)
	s.lifecycle = NewAccountLifecycle(s.repo.Accounts(), WithLifecycleActivitySink(sink))
	return s
}

// TokenService returns the token codec used by this service
func (s *SessionService) TokenService() TokenService {
	return s.tokenService
}

// Register creates an account from a self service registration. The email
// existence pre-check is an optimization: the unique index on email is the
// guarantee, and a violation raised by a concurrent registration comes back
// as the same conflict error the pre-check produces.
func (s *SessionService) Register(ctx context.Context, input RegisterInput) (*PublicAccount, error) {
	if err := CanRegister(input.Role); err != nil {
		return nil, err
	}

	account, err := s.createAccount(ctx, input.Email, input.Password, input.Role, SystemActor)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, ActivityEventRegistered, ActorRef{ID: account.ID.String(), Type: "user"}, account.ID.String(), map[string]any{
		"role": string(account.Role),
	})

	// Best effort: the account is committed, a profile failure must not
	// unwind it. The sink keeps a trace so the profile can be backfilled.
	seed := ProfileSeed{
		AccountID: account.ID.String(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     account.Email,
		Language:  input.Language,
	}
	if err := s.profiles.CreateProfile(ctx, seed); err != nil {
		s.logger.Error("profile creation failed after registration", "account_id", account.ID.String(), "error", err)
		s.emitEvent(ctx, ActivityEventProfileDeferred, ActorRef{Type: SystemActor}, account.ID.String(), map[string]any{
			"error": err.Error(),
		})
	}

	return account.Public(), nil
}

// Login verifies credentials and mints a session token. Unknown email,
// wrong password, and non active accounts produce the identical external
// outcome; the verifier is never invoked for non active accounts.
func (s *SessionService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repo.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			s.emitLoginFailure(ctx, email, "", "account_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during login")
	}

	account.EnsureStatus()
	if err := CanAuthenticate(account.Status); err != nil {
		s.emitLoginFailure(ctx, email, account.ID.String(), string(account.Status))
		return nil, err
	}

	if err := ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			s.emitLoginFailure(ctx, email, account.ID.String(), "password_mismatch")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, expiresAt, err := s.tokenService.Generate(accountIdentity{account: account})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Accounts().TrackSuccessfulLogin(ctx, account); err != nil {
		s.logger.Error("failed to track successful login", "account_id", account.ID.String(), "error", err)
	}

	s.emitEvent(ctx, ActivityEventLoginSuccess, ActorRef{ID: account.ID.String(), Type: "user"}, account.ID.String(), map[string]any{
		"email": email,
	})

	return &LoginResult{
		Token:     token,
		Role:      account.Role,
		ExpiresAt: expiresAt,
		ExpiresIn: time.Until(expiresAt),
	}, nil
}

// CurrentIdentity resolves an account by id. This path is only reached
// after token verification succeeded, so a miss is a not-found, not an
// unauthorized.
func (s *SessionService) CurrentIdentity(ctx context.Context, accountID string) (*PublicAccount, error) {
	account, err := s.getByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return account.Public(), nil
}

// AdminCreateUser provisions an account on behalf of an administrator. The
// target role restriction applies here; the acting caller's own privilege
// was checked upstream by the protected route.
func (s *SessionService) AdminCreateUser(ctx context.Context, input AdminCreateInput) (*PublicAccount, error) {
	if err := CanAdminCreate(input.Role); err != nil {
		return nil, err
	}

	createdBy := SystemActor
	if input.Actor.ID != "" {
		createdBy = input.Actor.ID
	}

	account, err := s.createAccount(ctx, input.Email, input.Password, input.Role, createdBy)
	if err != nil {
		return nil, err
	}

	s.emitEvent(ctx, ActivityEventAdminCreated, input.Actor, account.ID.String(), map[string]any{
		"role": string(account.Role),
	})

	return account.Public(), nil
}

// UpdateStatus moves an account to a new status. Transitions are
// unrestricted: any status may move to any other.
func (s *SessionService) UpdateStatus(ctx context.Context, accountID string, status AccountStatus, opts ...TransitionOption) (*PublicAccount, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	account, err := s.getByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated, err := s.lifecycle.Transition(ctx, account, status, opts...)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist status transition")
	}

	return updated.Public(), nil
}

// SessionFromToken verifies a bearer token and returns its session view.
func (s *SessionService) SessionFromToken(raw string) (*SessionObject, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		return nil, err
	}

	return sessionFromAuthClaims(claims)
}

func (s *SessionService) createAccount(ctx context.Context, email, password string, role Role, createdBy string) (*Account, error) {
	exists, err := s.repo.Accounts().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email availability")
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	account := &Account{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       StatusActive,
		CreatedBy:    createdBy,
		UpdatedBy:    createdBy,
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err := s.repo.Accounts().CreateTx(ctx, tx, account)
		if err != nil {
			return err
		}
		account = created
		return nil
	})

	if err != nil {
		// Two concurrent registrations can both pass the existence check;
		// the unique index decides, and the loser gets the same conflict.
		if IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "account creation failed")
	}

	return account, nil
}

func (s *SessionService) getByID(ctx context.Context, accountID string) (*Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, ErrAccountNotFound
	}

	account, err := s.repo.Accounts().GetByID(ctx, accountID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account")
	}

	account.EnsureStatus()
	return account, nil
}

func (s *SessionService) emitLoginFailure(ctx context.Context, email, accountID, reason string) {
	actor := ActorRef{Type: "unknown"}
	if accountID != "" {
		actor = ActorRef{ID: accountID, Type: "user"}
	}
	s.emitEvent(ctx, ActivityEventLoginFailure, actor, accountID, map[string]any{
		"email":  email,
		"reason": reason,
	})
}

func (s *SessionService) emitEvent(ctx context.Context, eventType ActivityEventType, actor ActorRef, accountID string, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType: eventType,
		Actor:     actor,
		AccountID: accountID,
		Metadata:  metadata,
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}

// accountIdentity adapts an Account to the Identity interface consumed by
// the token codec.
type accountIdentity struct {
	account *Account
}

var _ Identity = accountIdentity{}

func (a accountIdentity) ID() string {
	return a.account.ID.String()
}

func (a accountIdentity) Email() string {
	return a.account.Email
}

func (a accountIdentity) Role() Role {
	return a.account.Role
}
