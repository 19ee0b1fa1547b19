package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"estateClientManagement/internal/auth"
	"estateClientManagement/internal/logging"
	"estateClientManagement/internal/testutil"
	"estateClientManagement/repository"
)

const testSecret = "test-secret"

type testEnv struct {
	srv      *Server
	router   *gin.Engine
	users    *repository.UserRepository
	clients  *repository.ClientRepository
	admin    *repository.AdminSettingsRepository
	sessions *repository.SessionRepository
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	d := testutil.OpenInMemoryDB(t, name)

	e := &testEnv{
		users:    repository.NewUserRepository(d),
		clients:  repository.NewClientRepository(d),
		admin:    repository.NewAdminSettingsRepository(d),
		sessions: repository.NewSessionRepository(d),
	}
	e.srv = NewServer(e.users, e.clients, e.admin, e.sessions, testSecret, logging.New("error", "console"))
	e.router = NewRouter(e.srv, "*")
	return e
}

// userCookie creates an account plus a logged-in session and returns the
// cookie a browser would hold.
func (e *testEnv) userCookie(t *testing.T, username string) *http.Cookie {
	t.Helper()
	ctx := context.Background()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := e.users.Create(ctx, username, username+"@example.com", hash)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	s, err := e.sessions.Create(ctx)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := e.sessions.SetUser(ctx, s.ID, u.ID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
	return testutil.SessionCookie(t, testSecret, s.ID)
}

// adminCookie returns a cookie for a session with only the admin flag set.
func (e *testEnv) adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	ctx := context.Background()
	s, err := e.sessions.Create(ctx)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := e.sessions.SetAdmin(ctx, s.ID, time.Now()); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	return testutil.SessionCookie(t, testSecret, s.ID)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
