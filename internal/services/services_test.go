package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/habithaven/internal/api"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }

func newTestServices(t *testing.T, h http.Handler) *Services {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	svc := New(api.New(srv.URL, nil))
	svc.Tasks.Now = fixedNow
	svc.Prayers.Now = fixedNow
	return svc
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message":"Not found"}`))
}

// taskBackend keeps tasks in memory the way the real backend would
type taskBackend struct {
	mu    sync.Mutex
	tasks []map[string]any
}

func (b *taskBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /task/createTask", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		defer b.mu.Unlock()
		task := map[string]any{
			"_id":         fmt.Sprintf("t%d", len(b.tasks)+1),
			"title":       in["title"],
			"description": in["description"],
			"date":        fmt.Sprintf("%vT00:00:00.000Z", in["date"]),
			"completed":   false,
		}
		b.tasks = append(b.tasks, task)
		json.NewEncoder(w).Encode(map[string]any{"message": "Task created", "task": task})
	})
	mux.HandleFunc("GET /task/allTask", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"data": b.tasks})
	})
	mux.HandleFunc("PUT /task/complete/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]bool
		json.NewDecoder(r.Body).Decode(&in)
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, task := range b.tasks {
			if task["_id"] == r.PathValue("id") {
				task["completed"] = in["isCompleted"]
				json.NewEncoder(w).Encode(map[string]any{"data": task})
				return
			}
		}
		notFound(w, r)
	})
	mux.HandleFunc("DELETE /task/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, task := range b.tasks {
			if task["_id"] == r.PathValue("id") {
				b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
				w.Write([]byte(`{"message":"Task deleted"}`))
				return
			}
		}
		notFound(w, r)
	})
	return mux
}

func TestTaskLifecycle(t *testing.T) {
	backend := &taskBackend{}
	svc := newTestServices(t, backend.handler())
	ctx := context.Background()

	created, err := svc.Tasks.Create(ctx, TaskInput{Title: "Read Quran"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "t1" || created.Date != "2025-03-14" {
		t.Errorf("Create() = %+v", created)
	}

	tasks, err := svc.Tasks.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Read Quran" || tasks[0].IsCompleted {
		t.Fatalf("List() = %+v, want one incomplete task", tasks)
	}

	if _, err := svc.Tasks.SetCompleted(ctx, tasks[0].ID, true); err != nil {
		t.Fatalf("SetCompleted() error = %v", err)
	}
	tasks, err = svc.Tasks.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 || !tasks[0].IsCompleted {
		t.Fatalf("List() after toggle = %+v, want completed", tasks)
	}

	if err := svc.Tasks.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	tasks, _ = svc.Tasks.List(ctx)
	if len(tasks) != 0 {
		t.Errorf("List() after delete = %+v, want empty", tasks)
	}

	err = svc.Tasks.Delete(ctx, "missing")
	if err == nil || !api.IsNotFound(err) {
		t.Errorf("Delete(missing) error = %v, want not found", err)
	}
}

func TestTaskFieldFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		done bool
	}{
		{"canonical", `[{"id":"a","title":"x","date":"2025-01-02","isCompleted":true}]`, "a", true},
		{"mongo id and completed", `{"data":[{"_id":"b","date":"2025-01-02T10:00:00Z","completed":true}]}`, "b", true},
		{"snake case", `{"message":[{"id":7,"date":"2025-01-02","is_completed":"true"}]}`, "7", true},
		{"id wins over _id", `[{"id":"c","_id":"d","date":"2025-01-02"}]`, "c", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t, respond(tt.body))
			tasks, err := svc.Tasks.List(context.Background())
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(tasks) != 1 {
				t.Fatalf("List() = %+v", tasks)
			}
			if tasks[0].ID != tt.want || tasks[0].IsCompleted != tt.done || tasks[0].Date != "2025-01-02" {
				t.Errorf("task = %+v, want id %q done %v", tasks[0], tt.want, tt.done)
			}
		})
	}
}

func TestListEndpointsNotFoundAreEmpty(t *testing.T) {
	svc := newTestServices(t, http.HandlerFunc(notFound))
	ctx := context.Background()

	checks := map[string]func() (int, error){
		"tasks": func() (int, error) { v, err := svc.Tasks.List(ctx); return len(v), err },
		"challenges": func() (int, error) {
			v, err := svc.Challenges.List(ctx)
			return len(v), err
		},
		"my challenges": func() (int, error) { v, err := svc.Challenges.Mine(ctx); return len(v), err },
		"groups":        func() (int, error) { v, err := svc.Groups.List(ctx); return len(v), err },
		"my groups":     func() (int, error) { v, err := svc.Groups.Mine(ctx); return len(v), err },
		"leaderboard": func() (int, error) {
			v, err := svc.GroupChallenges.Leaderboard(ctx, "gc1")
			return len(v), err
		},
	}
	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			n, err := check()
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
			if n != 0 {
				t.Errorf("len = %d, want 0", n)
			}
		})
	}
}

func TestListServerErrorIsReturned(t *testing.T) {
	svc := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"Database unavailable"}`))
	}))
	_, err := svc.Tasks.List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if api.Message(err) != "Database unavailable" {
		t.Errorf("Message(err) = %q", api.Message(err))
	}
}

func TestPrayerTodayNotFound(t *testing.T) {
	svc := newTestServices(t, http.HandlerFunc(notFound))
	got, err := svc.Prayers.Today(context.Background())
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if !got.NeedsCreation {
		t.Error("NeedsCreation = false, want true")
	}
	if got.Prayers == nil || len(got.Prayers) != 0 {
		t.Errorf("Prayers = %#v, want empty non-nil", got.Prayers)
	}
}

func TestPrayerFieldFallbacks(t *testing.T) {
	body := `{"data":[
		{"_id":"5","type":"Isha"},
		{"id":"1","prayerName":"Fajar","isCompleted":true,"completedAt":"2025-03-14T05:01:00Z"},
		{"id":"2","name":"Dhuhr","completed":true,"date":"2025-03-13T00:00:00.000Z"},
		{"id":"3","prayer_name":"Asr","is_completed":false,"prayer_date":"2025-03-14"},
		{"id":"0","prayerName":"Tahajjud"}
	]}`
	svc := newTestServices(t, respond(body))
	got, err := svc.Prayers.Today(context.Background())
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if got.NeedsCreation {
		t.Error("NeedsCreation = true on a populated day")
	}

	wantNames := []string{"Tahajjud", "Fajar", "Dhuhr", "Asr", "Isha"}
	if len(got.Prayers) != len(wantNames) {
		t.Fatalf("Prayers = %+v", got.Prayers)
	}
	for i, name := range wantNames {
		if got.Prayers[i].Name != name {
			t.Errorf("Prayers[%d].Name = %q, want %q", i, got.Prayers[i].Name, name)
		}
	}

	fajr := got.Prayers[1]
	if !fajr.IsCompleted || fajr.CompletedAt == nil || fajr.Date != "2025-03-14" {
		t.Errorf("Fajar = %+v", fajr)
	}
	if dhuhr := got.Prayers[2]; !dhuhr.IsCompleted || dhuhr.Date != "2025-03-13" {
		t.Errorf("Dhuhr = %+v", dhuhr)
	}
	if isha := got.Prayers[4]; isha.ID != "5" || isha.Date != "2025-03-14" {
		t.Errorf("Isha = %+v, want id 5 dated today", isha)
	}
}

func TestPrayerEnsureToday(t *testing.T) {
	var created atomic.Bool
	var posts atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /prayer/prayers/today", func(w http.ResponseWriter, r *http.Request) {
		if !created.Load() {
			notFound(w, r)
			return
		}
		w.Write([]byte(`{"data":[{"id":"1","prayerName":"Fajar"},{"id":"2","prayerName":"Dhuhr"}]}`))
	})
	mux.HandleFunc("POST /prayer/prayers", func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		created.Store(true)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Prayers logged"}`))
	})
	svc := newTestServices(t, mux)
	ctx := context.Background()

	got, err := svc.Prayers.EnsureToday(ctx)
	if err != nil {
		t.Fatalf("EnsureToday() error = %v", err)
	}
	if len(got.Prayers) != 2 || got.NeedsCreation {
		t.Errorf("EnsureToday() = %+v", got)
	}

	if _, err := svc.Prayers.EnsureToday(ctx); err != nil {
		t.Fatalf("second EnsureToday() error = %v", err)
	}
	if n := posts.Load(); n != 1 {
		t.Errorf("log calls = %d, want 1", n)
	}
}

func TestPrayerToggle(t *testing.T) {
	var path string
	svc := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		w.Write([]byte(`{"prayer":{"_id":"p1","name":"Asr","completed":true}}`))
	}))
	p, err := svc.Prayers.Toggle(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if path != "POST /prayer/p1/complete" {
		t.Errorf("request = %q", path)
	}
	if p.ID != "p1" || p.Name != "Asr" || !p.IsCompleted {
		t.Errorf("Toggle() = %+v", p)
	}
}

func TestLoginTokenVariants(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		token    string
		username string
	}{
		{"data with nested user", `{"data":{"accessToken":"a1","user":{"_id":"u1","username":"amina"}}}`, "a1", "amina"},
		{"token at root", `{"token":"a2","data":{"id":"u1","username":"bilal"}}`, "a2", "bilal"},
		{"snake case", `{"access_token":"a3","user":{"id":"u1","username":"chen"}}`, "a3", "chen"},
		{"message envelope", `{"message":{"token":"a4","user":{"id":"u1","username":"dara"}}}`, "a4", "dara"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t, respond(tt.body))
			got, err := svc.Auth.Login(context.Background(), "a@b.c", "secret1")
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if got.Token != tt.token {
				t.Errorf("Token = %q, want %q", got.Token, tt.token)
			}
			if got.User.Username != tt.username {
				t.Errorf("User = %+v, want username %q", got.User, tt.username)
			}
		})
	}
}

func TestLoginMissingToken(t *testing.T) {
	svc := newTestServices(t, respond(`{"data":{"user":{"id":"u1"}}}`))
	_, err := svc.Auth.Login(context.Background(), "a@b.c", "secret1")
	if err != ErrMissingToken {
		t.Errorf("Login() error = %v, want ErrMissingToken", err)
	}
}

func TestLoginFailureKeepsServerMessage(t *testing.T) {
	svc := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid Credentials"}`))
	}))
	_, err := svc.Auth.Login(context.Background(), "a@b.c", "wrong")
	if api.Message(err) != "Invalid Credentials" {
		t.Errorf("Message(err) = %q", api.Message(err))
	}
}

func TestCurrentUserFallbacks(t *testing.T) {
	body := `{"data":{"user":{"_id":"u9","full_name":"Amina Y","username":"amina","streak":4,"badges":["Early Bird",{"name":"Consistent"}],"daily_score":"80"}}}`
	svc := newTestServices(t, respond(body))
	u, err := svc.Auth.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if u.ID != "u9" || u.FullName != "Amina Y" || u.StreakCount != 4 || u.DailyScore != 80 {
		t.Errorf("CurrentUser() = %+v", u)
	}
	if strings.Join(u.Badges, ",") != "Early Bird,Consistent" {
		t.Errorf("Badges = %v", u.Badges)
	}
}

func TestChallengeMineParticipations(t *testing.T) {
	body := `{"data":[
		{"challengeId":{"_id":"c1","title":"Quran 30","duration":30},"progress":12,"current_day":13},
		{"challengeId":"c2","progress":3,"isCompleted":true,"joinedAt":"2025-03-01T08:00:00Z"}
	]}`
	svc := newTestServices(t, respond(body))
	parts, err := svc.Challenges.Mine(context.Background())
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("Mine() = %+v", parts)
	}
	if c := parts[0].Challenge; c.ID != "c1" || c.Title != "Quran 30" || c.TotalDays != 30 {
		t.Errorf("populated challenge = %+v", c)
	}
	if parts[0].Progress != 12 || parts[0].CurrentDay != 13 {
		t.Errorf("participation = %+v", parts[0])
	}
	if parts[1].Challenge.ID != "c2" || !parts[1].Completed || parts[1].JoinedAt == nil {
		t.Errorf("bare-id participation = %+v", parts[1])
	}
}

func TestChallengeCreateSendsIndividualFlag(t *testing.T) {
	var body map[string]any
	svc := newTestServices(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"challenge":{"_id":"c1","title":"Fast","totalDays":7,"status":"active"}}`))
	}))
	c, err := svc.Challenges.Create(context.Background(), ChallengeInput{Title: "Fast", Goal: "Fast daily", TotalDays: 7})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if body["isGroup"] != false || body["totalDays"] != float64(7) {
		t.Errorf("request body = %v", body)
	}
	if c.ID != "c1" || !c.IsActive() {
		t.Errorf("Create() = %+v", c)
	}
}

func TestGroupDetailsRoles(t *testing.T) {
	body := `{"data":{
		"group":{"_id":"g1","name":"Fajr Crew","members":[
			{"userId":{"_id":"u1","fullName":"Amina","username":"amina"},"role":"admin"},
			{"userId":{"_id":"u2","fullName":"Bilal","username":"bilal"},"role":"member"},
			{"userId":"u3","fullName":"Chen","role":"member"}
		]},
		"challenge":{"_id":"gc1","title":"Pray on time","totalDays":10},
		"participants":[
			{"user":{"_id":"u2","fullName":"Bilal","xp":40},"progress":5},
			{"userId":"u1","fullName":"Amina","progress":7,"completed":false}
		]
	}}`
	svc := newTestServices(t, respond(body))
	d, err := svc.Groups.Details(context.Background(), "g1")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if d.Group.Name != "Fajr Crew" || d.Group.MemberCount != 3 {
		t.Errorf("Group = %+v", d.Group)
	}
	if len(d.Admins) != 1 || d.Admins[0].UserID != "u1" {
		t.Errorf("Admins = %+v", d.Admins)
	}
	if len(d.Members) != 2 || d.Members[0].UserID != "u2" || d.Members[1].FullName != "Chen" {
		t.Errorf("Members = %+v", d.Members)
	}
	if !d.IsAdmin("u1") || d.IsAdmin("u2") || !d.IsMember("u3") {
		t.Error("role lookups disagree with decoded roles")
	}
	if d.Challenge == nil || d.Challenge.ID != "gc1" || d.Challenge.GroupID != "g1" || !d.Challenge.IsGroup {
		t.Errorf("Challenge = %+v", d.Challenge)
	}
	if len(d.Participants) != 2 || d.Participants[0].UserID != "u2" || d.Participants[0].XP != 40 {
		t.Errorf("Participants = %+v", d.Participants)
	}
}

func TestGroupDetailsExplicitAdminsAreDisjoint(t *testing.T) {
	body := `{"_id":"g2","name":"Readers","admins":[{"_id":"u1","fullName":"Amina"}],
		"members":[{"_id":"u1","fullName":"Amina"},{"_id":"u2","fullName":"Bilal"}]}`
	svc := newTestServices(t, respond(body))
	d, err := svc.Groups.Details(context.Background(), "g2")
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if len(d.Admins) != 1 || len(d.Members) != 1 || d.Members[0].UserID != "u2" {
		t.Errorf("Admins = %+v, Members = %+v", d.Admins, d.Members)
	}
	if d.Challenge != nil {
		t.Errorf("Challenge = %+v, want nil", d.Challenge)
	}
}

func TestLeaderboardKeepsReceivedOrder(t *testing.T) {
	body := `{"data":[
		{"userId":{"_id":"u3","fullName":"Chen"},"progress":2},
		{"userId":{"_id":"u1","fullName":"Amina"},"progress":9},
		{"userId":{"_id":"u2","fullName":"Bilal"},"progress":5}
	]}`
	svc := newTestServices(t, respond(body))
	entries, err := svc.GroupChallenges.Leaderboard(context.Background(), "gc1")
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	want := []string{"u3", "u1", "u2"}
	if len(entries) != len(want) {
		t.Fatalf("Leaderboard() = %+v", entries)
	}
	for i, id := range want {
		if entries[i].UserID != id {
			t.Errorf("entries[%d].UserID = %q, want %q", i, entries[i].UserID, id)
		}
	}
}

func TestGroupChallengeCreateDefaultsGroup(t *testing.T) {
	svc := newTestServices(t, respond(`{"message":"Group challenge created"}`))
	c, err := svc.GroupChallenges.Create(context.Background(), GroupChallengeInput{GroupID: "g1", Title: "Read", TotalDays: 5})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.GroupID != "g1" || !c.IsGroup {
		t.Errorf("Create() = %+v", c)
	}
}
