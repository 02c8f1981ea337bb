package handlers

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/errors"
	"github.com/julianstephens/habithaven/internal/logger"
	"github.com/julianstephens/habithaven/internal/services"
	"github.com/julianstephens/habithaven/internal/tui/state"
	"github.com/julianstephens/habithaven/internal/validation"
)

// HandleSessionMessages applies sign-in, sign-out and profile results
func HandleSessionMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionMsg:
		if msg.Gen != m.Generation {
			return true, nil
		}
		return true, handleSession(m, msg)

	case LoggedOutMsg:
		m.Reset()
		m.Busy = false
		m.State = constants.StateAuth
		m.Alert = ""
		m.Notice = "Logged out"
		return true, nil

	case UserMsg:
		if m.SignedIn && msg.Gen == m.Generation && msg.User.ID != "" {
			m.User = msg.User
		}
		return true, nil
	}
	return false, nil
}

func handleSession(m *state.Model, msg SessionMsg) tea.Cmd {
	m.Busy = false
	if msg.Err != nil {
		m.Alert = errors.Alert(msg.Err)
		return nil
	}
	m.Notice = msg.Notice
	if !msg.Authenticated {
		m.State = constants.StateAuth
		return nil
	}
	m.SignedIn = true
	m.User = msg.User
	m.Alert = ""
	m.State = constants.StateDashboard
	return LoadAll(m)
}

// HandleAuthKeys handles the signed-out screen. Every key is consumed.
func HandleAuthKeys(m *state.Model, msg tea.KeyMsg) tea.Cmd {
	if m.Busy {
		return nil
	}
	switch {
	case key.Matches(msg, m.Keys.Login):
		m.LoginForm = &state.LoginFormModel{}
		return OpenForm(m, NewLoginForm(m.LoginForm), constants.StateLogin, constants.StateAuth)
	case key.Matches(msg, m.Keys.Register):
		m.RegisterForm = &state.RegisterFormModel{}
		return OpenForm(m, NewRegisterForm(m.RegisterForm), constants.StateRegister, constants.StateAuth)
	}
	return nil
}

func submitLogin(m *state.Model) tea.Cmd {
	fm := *m.LoginForm
	return submit(m,
		validation.Credentials{Email: fm.Email, Password: fm.Password},
		func() *huh.Form { return NewLoginForm(m.LoginForm) },
		func() tea.Cmd { return Login(m, fm) },
	)
}

func submitRegister(m *state.Model) tea.Cmd {
	fm := *m.RegisterForm
	in := services.RegisterInput{FullName: fm.FullName, Username: fm.Username, Email: fm.Email, Password: fm.Password}
	return submit(m, in,
		func() *huh.Form { return NewRegisterForm(m.RegisterForm) },
		func() tea.Cmd { return register(m, in) },
	)
}

// InitSession restores the persisted session
func InitSession(m *state.Model) tea.Cmd {
	sess, gen := m.Session, m.Generation
	return func() tea.Msg {
		if err := sess.Init(context.Background()); err != nil {
			return SessionMsg{Gen: gen, Err: err}
		}
		u, ok := sess.User()
		return SessionMsg{Gen: gen, User: u, Authenticated: ok}
	}
}

func Login(m *state.Model, fm state.LoginFormModel) tea.Cmd {
	sess, gen := m.Session, m.Generation
	return func() tea.Msg {
		if err := sess.Login(context.Background(), fm.Email, fm.Password); err != nil {
			return SessionMsg{Gen: gen, Err: err}
		}
		u, ok := sess.User()
		return SessionMsg{Gen: gen, User: u, Authenticated: ok}
	}
}

func register(m *state.Model, in services.RegisterInput) tea.Cmd {
	sess, gen := m.Session, m.Generation
	return func() tea.Msg {
		res, err := sess.Register(context.Background(), in)
		if err != nil {
			return SessionMsg{Gen: gen, Err: err}
		}
		if !res.AutoLoggedIn {
			return SessionMsg{Gen: gen, Notice: "Account created. Please log in."}
		}
		return SessionMsg{Gen: gen, User: res.User, Authenticated: true, Notice: "Welcome to HabitHaven!"}
	}
}

func logout(m *state.Model) tea.Cmd {
	sess := m.Session
	return func() tea.Msg {
		// Logout always clears local state
		_ = sess.Logout(context.Background())
		return LoggedOutMsg{}
	}
}

func refreshUser(m *state.Model) tea.Cmd {
	sess, gen := m.Session, m.Generation
	return func() tea.Msg {
		if err := sess.Refresh(context.Background()); err != nil {
			logger.Warn("Failed to refresh profile", "error", err)
		}
		u, _ := sess.User()
		return UserMsg{Gen: gen, User: u}
	}
}
