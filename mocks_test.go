package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"mime/multipart"
	"sync"

	auth "github.com/coordvol/go-auth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockIdentity implements auth.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() auth.Role {
	args := m.Called()
	return auth.Role(args.String(0))
}

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// fakeAccounts is an in-memory account store. The embedded repository
// interface covers the methods the tests never reach; calling one of those
// panics, which is the point.
type fakeAccounts struct {
	repository.Repository[*auth.Account]

	mu      sync.Mutex
	records map[string]*auth.Account

	// raceOnCreate simulates a concurrent registration winning between the
	// existence pre-check and the insert.
	raceOnCreate bool
	trackErr     error
	tracked      []string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		records: map[string]*auth.Account{},
	}
}

func (f *fakeAccounts) seed(account *auth.Account) *auth.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	f.records[account.Email] = account
	return account
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return f.GetByEmailTx(ctx, nil, email)
}

func (f *fakeAccounts) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*auth.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record, ok := f.records[email]; ok {
		return record, nil
	}
	return nil, repository.NewRecordNotFound()
}

func (f *fakeAccounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.ExistsByEmailTx(ctx, nil, email)
}

func (f *fakeAccounts) ExistsByEmailTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	if f.raceOnCreate {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[email]
	return ok, nil
}

func (f *fakeAccounts) Create(ctx context.Context, record *auth.Account, criteria ...repository.InsertCriteria) (*auth.Account, error) {
	return f.CreateTx(ctx, nil, record, criteria...)
}

func (f *fakeAccounts) CreateTx(ctx context.Context, tx bun.IDB, record *auth.Account, criteria ...repository.InsertCriteria) (*auth.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[record.Email]; ok || f.raceOnCreate {
		return nil, errors.New("UNIQUE constraint failed: auth_users.email")
	}

	record.EnsureStatus()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	f.records[record.Email] = record

	return record, nil
}

func (f *fakeAccounts) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*auth.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.ID.String() == id {
			return record, nil
		}
	}
	return nil, repository.NewRecordNotFound()
}

func (f *fakeAccounts) UpdateStatus(ctx context.Context, id uuid.UUID, status auth.AccountStatus, opts ...auth.StatusUpdateOption) (*auth.Account, error) {
	return f.UpdateStatusTx(ctx, nil, id, status, opts...)
}

func (f *fakeAccounts) UpdateStatusTx(ctx context.Context, tx bun.IDB, id uuid.UUID, status auth.AccountStatus, opts ...auth.StatusUpdateOption) (*auth.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.ID == id {
			record.Status = status
			for _, opt := range opts {
				if opt != nil {
					opt(record)
				}
			}
			return record, nil
		}
	}
	return nil, repository.NewRecordNotFound()
}

func (f *fakeAccounts) TrackSuccessfulLogin(ctx context.Context, account *auth.Account) error {
	return f.TrackSuccessfulLoginTx(ctx, nil, account)
}

func (f *fakeAccounts) TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, account *auth.Account) error {
	if f.trackErr != nil {
		return f.trackErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracked = append(f.tracked, account.ID.String())
	return nil
}

// fakeRepoManager wires the fake store behind the RepositoryManager port.
type fakeRepoManager struct {
	accounts *fakeAccounts
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{accounts: newFakeAccounts()}
}

func (f *fakeRepoManager) Validate() error {
	return nil
}

func (f *fakeRepoManager) MustValidate() {}

func (f *fakeRepoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	return fn(ctx, bun.Tx{})
}

func (f *fakeRepoManager) Accounts() auth.Accounts {
	return f.accounts
}

// recordingSink captures activity events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []auth.ActivityEvent
	err    error
}

func (s *recordingSink) Record(ctx context.Context, event auth.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) byType(eventType auth.ActivityEventType) []auth.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []auth.ActivityEvent{}
	for _, event := range s.events {
		if event.EventType == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

// recordingProfiles captures profile seeds, optionally failing.
type recordingProfiles struct {
	mu    sync.Mutex
	seeds []auth.ProfileSeed
	err   error
}

func (p *recordingProfiles) CreateProfile(ctx context.Context, seed auth.ProfileSeed) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeds = append(p.seeds, seed)
	return nil
}

// MockContext mocks the router.Context surface the middleware and
// controllers touch.
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) QueryValues(key string) []string {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) LocalsMerge(key any, value map[string]any) map[string]any {
	args := m.Called(key, value)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]any)
}

func (m *MockContext) FormFile(key string) (*multipart.FileHeader, error) {
	args := m.Called(key)
	header, _ := args.Get(0).(*multipart.FileHeader)
	return header, args.Error(1)
}

func (m *MockContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) IP() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) SendStatus(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) SendStream(r io.Reader) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockContext) RouteName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) RouteParams() map[string]string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]string)
}
