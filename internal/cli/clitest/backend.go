// Package clitest runs an in-memory HabitHaven backend for command and TUI tests.
package clitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habithaven/internal/cli"
	"github.com/julianstephens/habithaven/internal/config"
	"github.com/julianstephens/habithaven/internal/keyring"
)

type user struct {
	ID       string
	FullName string
	Username string
	Email    string
	Password string
	XP       int
}

func (u *user) json() map[string]any {
	return map[string]any{
		"_id":         u.ID,
		"fullName":    u.FullName,
		"username":    u.Username,
		"email":       u.Email,
		"xp":          u.XP,
		"level":       1 + u.XP/100,
		"streakCount": 0,
		"badges":      []string{},
	}
}

type challenge struct {
	ID, Title, Goal, GroupID string
	TotalDays                int
	Progress                 map[string]int // by user id
}

// Backend is a fake backend. Its responses deliberately mix the envelope
// shapes the real backend uses.
type Backend struct {
	Server *httptest.Server

	mu         sync.Mutex
	seq        int
	users      map[string]*user // by email
	order      []*user
	tokens     map[string]*user
	tasks      []map[string]any
	prayers    []map[string]any
	challenges []*challenge
	groups     []map[string]any
	members    map[string][]string // group id -> user ids; first is admin
}

// New starts a backend that is closed when t finishes
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		users:   map[string]*user{},
		tokens:  map[string]*user{},
		members: map[string][]string{},
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)
	return b
}

// Context returns a command context pointed at the backend, with the OS
// keyring replaced by the in-memory mock.
func (b *Backend) Context(t testing.TB) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	_ = keyring.Store{}.Clear()
	return cli.NewContext(config.Config{APIURL: b.Server.URL, ConfigDir: t.TempDir()}, keyring.Store{})
}

// SeedUser registers an account directly
func (b *Backend) SeedUser(fullName, username, email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addUser(fullName, username, email, password)
}

// LoggedInContext returns a context whose keyring already holds a valid token
func (b *Backend) LoggedInContext(t testing.TB) *cli.Context {
	t.Helper()
	ctx := b.Context(t)
	b.mu.Lock()
	u := b.addUser("Amina Yusuf", "amina", "amina@example.com", "secret1")
	token := b.issue(u)
	b.mu.Unlock()
	if err := (keyring.Store{}).Save(token); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	return ctx
}

// SwitchUser stores a fresh token for a seeded user, so the next command
// run by any context acts as that user
func (b *Backend) SwitchUser(t testing.TB, email string) {
	t.Helper()
	b.mu.Lock()
	u, ok := b.users[email]
	var token string
	if ok {
		token = b.issue(u)
	}
	b.mu.Unlock()
	if !ok {
		t.Fatalf("no seeded user %s", email)
	}
	if err := (keyring.Store{}).Save(token); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}
}

// Tasks returns a snapshot of stored tasks
func (b *Backend) Tasks() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Prayers returns a snapshot of today's stored prayers
func (b *Backend) Prayers() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, len(b.prayers))
	copy(out, b.prayers)
	return out
}

// Progress returns a user's progress in a challenge
func (b *Backend) Progress(challengeID, email string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[email]
	for _, c := range b.challenges {
		if c.ID == challengeID && u != nil {
			return c.Progress[u.ID]
		}
	}
	return 0
}

// Members returns the member ids of a group, admin first
func (b *Backend) Members(groupID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.members[groupID]...)
}

func (b *Backend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s%d", prefix, b.seq)
}

func (b *Backend) addUser(fullName, username, email, password string) *user {
	if u, ok := b.users[email]; ok {
		return u
	}
	u := &user{ID: b.nextID("u"), FullName: fullName, Username: username, Email: email, Password: password}
	b.users[email] = u
	b.order = append(b.order, u)
	return u
}

func (b *Backend) issue(u *user) string {
	token := b.nextID("token-")
	b.tokens[token] = u
	return token
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func fail(w http.ResponseWriter, status int, msg string) {
	write(w, status, map[string]string{"message": msg})
}

// authed wraps a handler that needs a valid bearer token
func (b *Backend) authed(h func(http.ResponseWriter, *http.Request, *user)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.tokens[token]
		if !ok {
			fail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h(w, r, u)
	}
}

func decode(r *http.Request) map[string]any {
	body := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	return body
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /user/register", func(w http.ResponseWriter, r *http.Request) {
		in := decode(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.users[str(in, "email")]; ok {
			fail(w, http.StatusConflict, "Email already in use")
			return
		}
		u := b.addUser(str(in, "fullName"), str(in, "username"), str(in, "email"), str(in, "password"))
		write(w, http.StatusCreated, map[string]any{"message": "User registered", "user": u.json()})
	})
	mux.HandleFunc("POST /user/login", func(w http.ResponseWriter, r *http.Request) {
		in := decode(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.users[str(in, "email")]
		if !ok {
			fail(w, http.StatusNotFound, "User Not Exists")
			return
		}
		if u.Password != str(in, "password") {
			fail(w, http.StatusUnauthorized, "Invalid Credentials")
			return
		}
		write(w, http.StatusOK, map[string]any{"data": map[string]any{"accessToken": b.issue(u), "user": u.json()}})
	})
	mux.HandleFunc("GET /user/my-account", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		write(w, http.StatusOK, map[string]any{"data": u.json()})
	}))
	mux.HandleFunc("POST /user/logout", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		for token, owner := range b.tokens {
			if owner == u {
				delete(b.tokens, token)
			}
		}
		write(w, http.StatusOK, map[string]any{"message": "Logged out"})
	}))
	mux.HandleFunc("PATCH /user/update-account", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		in := decode(r)
		if v := str(in, "fullName"); v != "" {
			u.FullName = v
		}
		if v := str(in, "username"); v != "" {
			u.Username = v
		}
		if v := str(in, "email"); v != "" {
			delete(b.users, u.Email)
			u.Email = v
			b.users[v] = u
		}
		write(w, http.StatusOK, map[string]any{"message": "Account updated", "user": u.json()})
	}))
	mux.HandleFunc("PATCH /user/change-password", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		in := decode(r)
		if str(in, "oldPassword") != u.Password {
			fail(w, http.StatusBadRequest, "Old password is incorrect")
			return
		}
		u.Password = str(in, "newPassword")
		write(w, http.StatusOK, map[string]any{"message": "Password changed"})
	}))

	mux.HandleFunc("POST /task/createTask", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		in := decode(r)
		task := map[string]any{
			"_id":         b.nextID("t"),
			"title":       in["title"],
			"description": in["description"],
			"date":        fmt.Sprintf("%vT00:00:00.000Z", in["date"]),
			"completed":   false,
		}
		b.tasks = append(b.tasks, task)
		write(w, http.StatusCreated, map[string]any{"message": "Task created", "task": task})
	}))
	mux.HandleFunc("GET /task/allTask", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		if len(b.tasks) == 0 {
			fail(w, http.StatusNotFound, "No tasks found")
			return
		}
		write(w, http.StatusOK, map[string]any{"data": b.tasks})
	}))
	mux.HandleFunc("PUT /task/update/{id}", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		task := b.task(r.PathValue("id"))
		if task == nil {
			fail(w, http.StatusNotFound, "Task not found")
			return
		}
		in := decode(r)
		for _, key := range []string{"title", "description"} {
			if v := str(in, key); v != "" {
				task[key] = v
			}
		}
		if v := str(in, "date"); v != "" {
			task["date"] = v
		}
		write(w, http.StatusOK, map[string]any{"data": task})
	}))
	mux.HandleFunc("PUT /task/complete/{id}", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		task := b.task(r.PathValue("id"))
		if task == nil {
			fail(w, http.StatusNotFound, "Task not found")
			return
		}
		in := decode(r)
		task["completed"] = in["isCompleted"]
		write(w, http.StatusOK, map[string]any{"data": task})
	}))
	mux.HandleFunc("DELETE /task/delete/{id}", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		for i, task := range b.tasks {
			if task["_id"] == r.PathValue("id") {
				b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
				write(w, http.StatusOK, map[string]any{"message": "Task deleted"})
				return
			}
		}
		fail(w, http.StatusNotFound, "Task not found")
	}))

	mux.HandleFunc("POST /prayer/prayers", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		if len(b.prayers) == 0 {
			for _, name := range []string{"Fajar", "Dhuhr", "Asr", "Maghrib", "Isha", "Tahajjud"} {
				b.prayers = append(b.prayers, map[string]any{"_id": b.nextID("p"), "prayerName": name, "isCompleted": false})
			}
		}
		write(w, http.StatusCreated, map[string]any{"message": b.prayers})
	}))
	mux.HandleFunc("GET /prayer/prayers/today", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		if len(b.prayers) == 0 {
			fail(w, http.StatusNotFound, "No prayers found for today")
			return
		}
		write(w, http.StatusOK, b.prayers)
	}))
	mux.HandleFunc("POST /prayer/{id}/complete", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		for _, p := range b.prayers {
			if p["_id"] == r.PathValue("id") {
				done, _ := p["isCompleted"].(bool)
				p["isCompleted"] = !done
				write(w, http.StatusOK, map[string]any{"data": p})
				return
			}
		}
		fail(w, http.StatusNotFound, "Prayer not found")
	}))

	mux.HandleFunc("POST /challenge/create", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		c := b.addChallenge(decode(r), "")
		write(w, http.StatusCreated, map[string]any{"challenge": b.challengeJSON(c)})
	}))
	mux.HandleFunc("GET /challenge/all", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		out := []map[string]any{}
		for _, c := range b.challenges {
			if c.GroupID == "" {
				out = append(out, b.challengeJSON(c))
			}
		}
		write(w, http.StatusOK, map[string]any{"data": out})
	}))
	mux.HandleFunc("GET /challenge/my-challenges", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		out := []map[string]any{}
		for _, c := range b.challenges {
			if p, ok := c.Progress[u.ID]; ok && c.GroupID == "" {
				out = append(out, map[string]any{
					"challengeId": b.challengeJSON(c),
					"progress":    p,
					"currentDay":  p + 1,
					"completed":   p >= c.TotalDays,
				})
			}
		}
		write(w, http.StatusOK, map[string]any{"data": out})
	}))
	mux.HandleFunc("POST /challenge/{id}/join", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		b.join(w, r.PathValue("id"), u)
	}))
	mux.HandleFunc("PATCH /challenge/{id}/progress", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		b.progress(w, r.PathValue("id"), u)
	}))

	mux.HandleFunc("POST /group/createGroup", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		in := decode(r)
		g := map[string]any{"_id": b.nextID("g"), "name": in["name"], "description": in["description"]}
		b.groups = append(b.groups, g)
		b.members[g["_id"].(string)] = []string{u.ID}
		write(w, http.StatusCreated, map[string]any{"data": b.groupJSON(g)})
	}))
	mux.HandleFunc("GET /group/allGroups", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		out := []map[string]any{}
		for _, g := range b.groups {
			out = append(out, b.groupJSON(g))
		}
		write(w, http.StatusOK, map[string]any{"message": out})
	}))
	mux.HandleFunc("GET /group/my-groups", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		out := []map[string]any{}
		for _, g := range b.groups {
			for _, id := range b.members[g["_id"].(string)] {
				if id == u.ID {
					out = append(out, b.groupJSON(g))
				}
			}
		}
		write(w, http.StatusOK, map[string]any{"data": out})
	}))
	mux.HandleFunc("POST /group/{id}/join", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		id := r.PathValue("id")
		if _, ok := b.members[id]; !ok {
			fail(w, http.StatusNotFound, "Group not found")
			return
		}
		for _, m := range b.members[id] {
			if m == u.ID {
				fail(w, http.StatusBadRequest, "Already a member")
				return
			}
		}
		b.members[id] = append(b.members[id], u.ID)
		write(w, http.StatusOK, map[string]any{"message": "Joined group"})
	}))
	mux.HandleFunc("POST /group/{id}/leave", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		id := r.PathValue("id")
		members := b.members[id]
		for i, m := range members {
			if m == u.ID {
				b.members[id] = append(members[:i], members[i+1:]...)
				write(w, http.StatusOK, map[string]any{"message": "Left group"})
				return
			}
		}
		fail(w, http.StatusBadRequest, "Not a member of this group")
	}))
	mux.HandleFunc("GET /group/{id}/details", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		id := r.PathValue("id")
		for _, g := range b.groups {
			if g["_id"] != id {
				continue
			}
			body := map[string]any{"group": b.groupJSON(g)}
			for _, c := range b.challenges {
				if c.GroupID == id {
					body["challenge"] = b.challengeJSON(c)
					body["participants"] = b.leaderboard(c)
				}
			}
			write(w, http.StatusOK, map[string]any{"data": body})
			return
		}
		fail(w, http.StatusNotFound, "Group not found")
	}))

	mux.HandleFunc("POST /groupChallenge/group-challenges", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		in := decode(r)
		c := b.addChallenge(in, str(in, "groupId"))
		write(w, http.StatusCreated, map[string]any{"data": b.challengeJSON(c)})
	}))
	mux.HandleFunc("POST /groupChallenge/group-challenges/{id}/join", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		b.join(w, r.PathValue("id"), u)
	}))
	mux.HandleFunc("PATCH /groupChallenge/group-challenges/{id}/progress", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		b.progress(w, r.PathValue("id"), u)
	}))
	mux.HandleFunc("GET /groupChallenge/group-challenges/{id}/leaderboard", b.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		c := b.challenge(r.PathValue("id"))
		if c == nil {
			fail(w, http.StatusNotFound, "Challenge not found")
			return
		}
		write(w, http.StatusOK, map[string]any{"data": b.leaderboard(c)})
	}))

	return mux
}

func (b *Backend) task(id string) map[string]any {
	for _, task := range b.tasks {
		if task["_id"] == id {
			return task
		}
	}
	return nil
}

func (b *Backend) challenge(id string) *challenge {
	for _, c := range b.challenges {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (b *Backend) addChallenge(in map[string]any, groupID string) *challenge {
	days, _ := in["totalDays"].(float64)
	c := &challenge{
		ID:        b.nextID("c"),
		Title:     str(in, "title"),
		Goal:      str(in, "goal"),
		GroupID:   groupID,
		TotalDays: int(days),
		Progress:  map[string]int{},
	}
	b.challenges = append(b.challenges, c)
	return c
}

func (b *Backend) challengeJSON(c *challenge) map[string]any {
	out := map[string]any{"_id": c.ID, "title": c.Title, "goal": c.Goal, "totalDays": c.TotalDays, "status": "active"}
	if c.GroupID != "" {
		out["groupId"] = c.GroupID
	}
	return out
}

func (b *Backend) groupJSON(g map[string]any) map[string]any {
	id := g["_id"].(string)
	members := []map[string]any{}
	for i, uid := range b.members[id] {
		role := "member"
		if i == 0 {
			role = "admin"
		}
		for _, u := range b.order {
			if u.ID == uid {
				members = append(members, map[string]any{"userId": u.json(), "role": role})
			}
		}
	}
	return map[string]any{"_id": id, "name": g["name"], "description": g["description"], "members": members}
}

func (b *Backend) leaderboard(c *challenge) []map[string]any {
	out := []map[string]any{}
	for _, u := range b.order {
		if p, ok := c.Progress[u.ID]; ok {
			out = append(out, map[string]any{"userId": u.json(), "progress": p, "completed": p >= c.TotalDays})
		}
	}
	return out
}

func (b *Backend) join(w http.ResponseWriter, id string, u *user) {
	c := b.challenge(id)
	if c == nil {
		fail(w, http.StatusNotFound, "Challenge not found")
		return
	}
	if _, ok := c.Progress[u.ID]; ok {
		fail(w, http.StatusBadRequest, "Already joined this challenge")
		return
	}
	c.Progress[u.ID] = 0
	write(w, http.StatusOK, map[string]any{"message": "Joined challenge"})
}

func (b *Backend) progress(w http.ResponseWriter, id string, u *user) {
	c := b.challenge(id)
	if c == nil {
		fail(w, http.StatusNotFound, "Challenge not found")
		return
	}
	p, ok := c.Progress[u.ID]
	if !ok {
		fail(w, http.StatusBadRequest, "You have not joined this challenge")
		return
	}
	if p < c.TotalDays {
		c.Progress[u.ID] = p + 1
		u.XP += 10
	}
	write(w, http.StatusOK, map[string]any{"data": map[string]any{
		"challengeId": c.ID,
		"progress":    c.Progress[u.ID],
		"completed":   c.Progress[u.ID] >= c.TotalDays,
	}})
}
