package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/habitdash/internal/apitest"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingNotifier) Notify(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
}

func (r *recordingNotifier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func newTestClient(t *testing.T, baseURL string) (*Client, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	c, err := New(baseURL, WithNotifier(n), WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, n
}

func login(t *testing.T, c *Client, username, password string) {
	t.Helper()
	out, err := c.Login(context.Background(), models.Credentials{Username: username, Password: password})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !out.OK() {
		t.Fatalf("Login() outcome = %v (%q), want success", out.Kind, out.Message)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	tests := []string{"", "localhost:5000", "ftp://example.com", "http://"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			if _, err := New(raw); err == nil {
				t.Errorf("New(%q) succeeded, want error", raw)
			}
		})
	}
}

func TestDoSendsHeadersAndCookies(t *testing.T) {
	var gotHeaders http.Header
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	c.SetCookies([]*http.Cookie{{Name: "session", Value: "abc", Path: "/"}})

	if _, err := c.Do(context.Background(), http.MethodPost, "/api/habits", map[string]string{"name": "Read"}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if gotHeaders.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotHeaders.Get("Content-Type"))
	}
	if gotHeaders.Get(constants.RequestIDHeader) == "" {
		t.Error("request id header missing")
	}
	if gotCookie != "abc" {
		t.Errorf("session cookie = %q, want abc", gotCookie)
	}
}

func TestDoUnauthorizedTearsDownSession(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.AddUser("amy", "pw")

	c, n := newTestClient(t, srv.URL)
	var expired int
	c.OnUnauthorized(func() { expired++ })

	login(t, c, "amy", "pw")
	if len(c.Cookies()) == 0 {
		t.Fatal("no session cookie after login")
	}

	srv.ExpireSessions()
	_, err := c.Habits(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Habits() error = %v, want ErrSessionExpired", err)
	}
	if !errors.Is(err, ErrNoData) {
		t.Error("ErrSessionExpired should match ErrNoData")
	}
	if expired != 1 {
		t.Errorf("unauthorized hook ran %d times, want 1", expired)
	}
	if len(c.Cookies()) != 0 {
		t.Error("cookies survived a 401")
	}
	texts := n.all()
	if len(texts) != 1 || texts[0] != constants.NoticeSessionExpired {
		t.Errorf("notices = %q, want [%q]", texts, constants.NoticeSessionExpired)
	}
}

func TestDoConcurrentUnauthorizedTearsDownOnce(t *testing.T) {
	// both requests are on the server before either answers
	var arrived sync.WaitGroup
	arrived.Add(2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		arrived.Wait()
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer srv.Close()

	c, n := newTestClient(t, srv.URL)
	var (
		mu      sync.Mutex
		expired int
	)
	c.OnUnauthorized(func() {
		mu.Lock()
		expired++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Do(context.Background(), http.MethodGet, constants.PathHabits, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, ErrSessionExpired) {
			t.Errorf("request %d error = %v, want ErrSessionExpired", i, err)
		}
	}
	if expired != 1 {
		t.Errorf("unauthorized hook ran %d times, want 1", expired)
	}
	if texts := n.all(); len(texts) != 1 {
		t.Errorf("notices = %q, want a single session expired notice", texts)
	}
}

func TestDoUnauthorizedOnLoginShowsServerMessage(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.AddUser("amy", "pw")

	c, n := newTestClient(t, srv.URL)
	var expired int
	c.OnUnauthorized(func() { expired++ })

	_, err := c.Login(context.Background(), models.Credentials{Username: "amy", Password: "wrong"})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("Login() error = %v, want ErrSessionExpired", err)
	}
	if expired != 1 {
		t.Errorf("unauthorized hook ran %d times, want 1", expired)
	}
	texts := n.all()
	if len(texts) != 1 || texts[0] != "Login Failed: Invalid username or password" {
		t.Errorf("notices = %q", texts)
	}
}

func TestDoUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, n := newTestClient(t, url)
	_, err := c.Status(context.Background())
	if !errors.Is(err, ErrServerUnreachable) {
		t.Fatalf("Status() error = %v, want ErrServerUnreachable", err)
	}
	if !errors.Is(err, ErrNoData) {
		t.Error("ErrServerUnreachable should match ErrNoData")
	}
	texts := n.all()
	if len(texts) != 1 || !strings.HasPrefix(texts[0], "Server connection error") {
		t.Errorf("notices = %q", texts)
	}
}

func TestDoTimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	n := &recordingNotifier{}
	c, err := New(srv.URL, WithNotifier(n), WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.Status(context.Background()); !errors.Is(err, ErrServerUnreachable) {
		t.Fatalf("Status() error = %v, want ErrServerUnreachable", err)
	}
	if len(n.all()) != 1 {
		t.Errorf("expected one unreachable notice, got %q", n.all())
	}
}

func TestDoCallerCancelIsSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c, n := newTestClient(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Status(ctx)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Status() error = %v, want ErrNoData", err)
	}
	if errors.Is(err, ErrServerUnreachable) {
		t.Error("caller cancellation reported as unreachable")
	}
	if len(n.all()) != 0 {
		t.Errorf("notices = %q, want none", n.all())
	}
}

func TestDoMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	c, n := newTestClient(t, srv.URL)
	_, err := c.Habits(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Habits() error = %v, want ErrMalformedResponse", err)
	}
	if len(n.all()) != 0 {
		t.Errorf("malformed body should not raise a transport notice, got %q", n.all())
	}
}

func TestNonUnauthorizedErrorStatusReturnsBody(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.AddUser("amy", "pw")

	c, _ := newTestClient(t, srv.URL)
	out, err := c.Register(context.Background(), models.Credentials{Username: "amy", Password: "pw"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if out.Kind != Rejected || out.Message != "User already exists" {
		t.Errorf("Register() = %v %q, want rejected with server message", out.Kind, out.Message)
	}
}

func TestHabitLifecycle(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.AddUser("amy", "pw")

	c, _ := newTestClient(t, srv.URL)
	ctx := context.Background()
	login(t, c, "amy", "pw")

	out, err := c.CreateHabit(ctx, "Read")
	if err != nil || !out.OK() {
		t.Fatalf("CreateHabit() = %v, %v", out, err)
	}

	habits, err := c.Habits(ctx)
	if err != nil {
		t.Fatalf("Habits() error = %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" || habits[0].LoggedToday {
		t.Fatalf("Habits() = %+v", habits)
	}
	id := habits[0].ID

	out, _ = c.LogHabit(ctx, id)
	if out.Kind != Success {
		t.Errorf("first LogHabit() kind = %v, want success", out.Kind)
	}
	out, _ = c.LogHabit(ctx, id)
	if out.Kind != AlreadyLogged {
		t.Errorf("second LogHabit() kind = %v, want already-logged", out.Kind)
	}

	status, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if got := status.Stats().XP; got != constants.HabitLogXP {
		t.Errorf("xp after one log = %d, want %d", got, constants.HabitLogXP)
	}

	out, _ = c.DeleteHabit(ctx, id)
	if !out.OK() {
		t.Errorf("DeleteHabit() = %v %q", out.Kind, out.Message)
	}
	out, _ = c.DeleteHabit(ctx, id)
	if out.Kind != Rejected {
		t.Errorf("deleting twice kind = %v, want rejected", out.Kind)
	}
	if srv.Hits(http.MethodDelete, "/api/habits/{id}") != 2 {
		t.Errorf("delete hits = %d, want 2", srv.Hits(http.MethodDelete, "/api/habits/{id}"))
	}
}

func TestLogSleep(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.AddUser("amy", "pw")

	c, _ := newTestClient(t, srv.URL)
	login(t, c, "amy", "pw")

	out, err := c.LogSleep(context.Background(), models.SleepLog{Bedtime: "23:00", WakeUp: "07:00", Quality: "4"})
	if err != nil || !out.OK() {
		t.Fatalf("LogSleep() = %v, %v", out, err)
	}
}

func TestPing(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	msg, err := c.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if !strings.Contains(msg, "API is running") {
		t.Errorf("Ping() = %q", msg)
	}
}
