package session

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/services"
)

type memoryStore struct {
	token   string
	saveErr error
	clears  int
}

func (m *memoryStore) Load() (string, error) { return m.token, nil }

func (m *memoryStore) Save(token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memoryStore) Clear() error {
	m.clears++
	m.token = ""
	return nil
}

type fakeAuth struct {
	loginResult services.LoginResult
	loginErr    error
	registerErr error
	currentUser models.User
	currentErr  error
	logoutErr   error
	updated     models.User
	logins      int
	logouts     int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (services.LoginResult, error) {
	f.logins++
	return f.loginResult, f.loginErr
}

func (f *fakeAuth) Register(ctx context.Context, in services.RegisterInput) (models.User, error) {
	if f.registerErr != nil {
		return models.User{}, f.registerErr
	}
	return models.User{ID: "new", Email: in.Email, Username: in.Username}, nil
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (models.User, error) {
	return f.currentUser, f.currentErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

func (f *fakeAuth) UpdateAccount(ctx context.Context, in services.AccountInput) (models.User, error) {
	return f.updated, nil
}

func (f *fakeAuth) ChangePassword(ctx context.Context, oldPassword, newPassword string) (models.User, error) {
	return f.updated, nil
}

func loggedIn(t *testing.T) (*Controller, *fakeAuth, *memoryStore) {
	t.Helper()
	auth := &fakeAuth{loginResult: services.LoginResult{
		User:  models.User{ID: "u1", FullName: "Amina", Email: "amina@example.com"},
		Token: "tok",
	}}
	store := &memoryStore{}
	c := New(auth, store)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := c.Login(context.Background(), "amina@example.com", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return c, auth, store
}

func TestInitWithoutToken(t *testing.T) {
	c := New(&fakeAuth{}, &memoryStore{})
	if c.State() != StateInitializing {
		t.Errorf("initial State() = %v", c.State())
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if c.State() != StateReady || c.Authenticated() {
		t.Errorf("State() = %v, Authenticated() = %v", c.State(), c.Authenticated())
	}
}

func TestInitRestoresSession(t *testing.T) {
	auth := &fakeAuth{currentUser: models.User{ID: "u1", Username: "amina"}}
	store := &memoryStore{token: "stored"}
	c := New(auth, store)

	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	u, ok := c.User()
	if !ok || u.ID != "u1" {
		t.Errorf("User() = %+v, %v", u, ok)
	}
	if c.Token() != "stored" || c.State() != StateReady {
		t.Errorf("Token() = %q, State() = %v", c.Token(), c.State())
	}
}

func TestInitDiscardsInvalidToken(t *testing.T) {
	auth := &fakeAuth{currentErr: &api.Error{StatusCode: 401, Message: "jwt expired"}}
	store := &memoryStore{token: "stale"}
	c := New(auth, store)

	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if c.Authenticated() || c.Token() != "" {
		t.Error("session should be anonymous")
	}
	if store.token != "" || store.clears != 1 {
		t.Errorf("store token = %q, clears = %d", store.token, store.clears)
	}
	if c.State() != StateReady {
		t.Errorf("State() = %v", c.State())
	}
}

func TestLoginPersistsToken(t *testing.T) {
	c, _, store := loggedIn(t)
	if store.token != "tok" || c.Token() != "tok" {
		t.Errorf("store = %q, Token() = %q", store.token, c.Token())
	}
	if !c.Authenticated() || c.State() != StateReady {
		t.Errorf("Authenticated() = %v, State() = %v", c.Authenticated(), c.State())
	}
}

func TestLoginTokenOnlyFetchesProfile(t *testing.T) {
	auth := &fakeAuth{
		loginResult: services.LoginResult{Token: "tok"},
		currentUser: models.User{ID: "u7", Username: "bilal"},
	}
	c := New(auth, &memoryStore{})
	if err := c.Login(context.Background(), "bilal@example.com", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if u, _ := c.User(); u.ID != "u7" {
		t.Errorf("User() = %+v", u)
	}
}

func TestLoginSavesEvenWhenKeyringFails(t *testing.T) {
	auth := &fakeAuth{loginResult: services.LoginResult{User: models.User{ID: "u1"}, Token: "tok"}}
	c := New(auth, &memoryStore{saveErr: errors.New("keyring locked")})
	if err := c.Login(context.Background(), "a@b.c", "secret1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !c.Authenticated() {
		t.Error("in-memory session should survive a persistence failure")
	}
}

func TestLoginErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user not exists", &api.Error{StatusCode: 404, Message: "User Not Exists"}, constants.MsgUserNotExists},
		{"does not exist", &api.Error{StatusCode: 400, Message: "Account does not exist"}, constants.MsgUserNotExists},
		{"invalid", &api.Error{StatusCode: 401, Message: "Invalid password"}, constants.MsgInvalidLogin},
		{"credentials", &api.Error{StatusCode: 401, Message: "Wrong Credentials"}, constants.MsgInvalidLogin},
		{"network", &api.Error{StatusCode: 0, Message: "dial tcp: connection refused"}, constants.MsgNetworkError},
		{"other", &api.Error{StatusCode: 429, Message: "Too many attempts"}, "Too many attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&fakeAuth{loginErr: tt.err}, &memoryStore{})
			c.Init(context.Background())

			err := c.Login(context.Background(), "a@b.c", "secret1")
			if err == nil || err.Error() != tt.want {
				t.Fatalf("Login() error = %v, want %q", err, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Error("mapped error should wrap the backend error")
			}
			if c.State() != StateReady || c.Authenticated() {
				t.Errorf("State() = %v, Authenticated() = %v", c.State(), c.Authenticated())
			}
		})
	}
}

func TestRegisterLogsIn(t *testing.T) {
	auth := &fakeAuth{loginResult: services.LoginResult{User: models.User{ID: "new"}, Token: "tok"}}
	c := New(auth, &memoryStore{})
	res, err := c.Register(context.Background(), services.RegisterInput{Email: "a@b.c", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !res.AutoLoggedIn || !c.Authenticated() {
		t.Errorf("AutoLoggedIn = %v, Authenticated() = %v", res.AutoLoggedIn, c.Authenticated())
	}
}

func TestRegisterSucceedsWhenLoginFails(t *testing.T) {
	auth := &fakeAuth{loginErr: &api.Error{StatusCode: 500, Message: "boom"}}
	c := New(auth, &memoryStore{})
	res, err := c.Register(context.Background(), services.RegisterInput{Email: "a@b.c", Username: "amina", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if res.AutoLoggedIn || c.Authenticated() {
		t.Error("expected registration without login")
	}
	if res.User.Username != "amina" {
		t.Errorf("User = %+v", res.User)
	}
}

func TestRegisterFailure(t *testing.T) {
	c := New(&fakeAuth{registerErr: &api.Error{StatusCode: 409, Message: "Email already in use"}}, &memoryStore{})
	_, err := c.Register(context.Background(), services.RegisterInput{Email: "a@b.c", Password: "secret1"})
	if err == nil || err.Error() != "Email already in use" {
		t.Errorf("Register() error = %v", err)
	}
}

func TestLogoutClearsOnBackendFailure(t *testing.T) {
	c, auth, store := loggedIn(t)
	auth.logoutErr = &api.Error{StatusCode: 0, Message: "connection refused"}

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if auth.logouts != 1 {
		t.Errorf("backend logouts = %d", auth.logouts)
	}
	if c.Authenticated() || c.Token() != "" || store.token != "" {
		t.Error("session should be fully cleared")
	}
	if _, ok := c.User(); ok {
		t.Error("User() should be absent after logout")
	}
}

func TestUpdateAccountReplacesUser(t *testing.T) {
	c, auth, _ := loggedIn(t)
	auth.updated = models.User{ID: "u1", FullName: "Amina Yusuf"}

	if err := c.UpdateAccount(context.Background(), services.AccountInput{FullName: "Amina Yusuf"}); err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}
	u, _ := c.User()
	if u.FullName != "Amina Yusuf" || u.Email != "" {
		t.Errorf("User() = %+v, want wholesale replacement", u)
	}
}

func TestChangePasswordWithoutUserRefreshes(t *testing.T) {
	c, auth, _ := loggedIn(t)
	auth.currentUser = models.User{ID: "u1", FullName: "Refreshed"}

	if err := c.ChangePassword(context.Background(), "secret1", "secret2"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if u, _ := c.User(); u.FullName != "Refreshed" {
		t.Errorf("User() = %+v", u)
	}
}

func TestProtectedOperationsRequireAuth(t *testing.T) {
	c := New(&fakeAuth{}, &memoryStore{})
	c.Init(context.Background())

	if err := c.UpdateAccount(context.Background(), services.AccountInput{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("UpdateAccount() error = %v", err)
	}
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Refresh() error = %v", err)
	}
}
