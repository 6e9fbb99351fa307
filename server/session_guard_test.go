package server_test

import (
	"net/http"
	"testing"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"

	"github.com/portal-labs/userportal/server"
	"github.com/portal-labs/userportal/users"
)

func TestRequireSessionBlocksDownstream(t *testing.T) {
	p := newPortal(t)

	invoked := false
	probe := server.ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}, p.srv.RequireSession())

	t.Run("no cookie", func(t *testing.T) {
		apitest.New().
			Handler(probe).
			Get("/gated").
			Expect(t).
			Status(http.StatusFound).
			Header("Location", "/login").
			End()
		require.False(t, invoked)
	})

	t.Run("unknown cookie", func(t *testing.T) {
		apitest.New().
			Handler(probe).
			Get("/gated").
			Cookies(sessionCookie("bogus-session")).
			Expect(t).
			Status(http.StatusFound).
			Header("Location", "/login").
			End()
		require.False(t, invoked)
	})

	t.Run("valid cookie passes through", func(t *testing.T) {
		id, err := p.sessions.Create("admin")
		require.NoError(t, err)

		apitest.New().
			Handler(probe).
			Get("/gated").
			Cookies(sessionCookie(id)).
			Expect(t).
			Status(http.StatusOK).
			End()
		require.True(t, invoked)
	})
}

func TestRequireAdmin(t *testing.T) {
	p := newPortal(t)

	_, err := p.users.Create("bob", "pw1", users.RoleUser)
	require.NoError(t, err)

	t.Run("non-admin gets 403", func(t *testing.T) {
		cookie := p.login(t, "bob", "pw1")
		apitest.New().
			Handler(p.srv).
			Get("/main/bob").
			Cookies(sessionCookie(cookie)).
			Expect(t).
			Status(http.StatusForbidden).
			End()
	})

	t.Run("admin gets 200", func(t *testing.T) {
		cookie := p.login(t, "admin", "admin123")
		apitest.New().
			Handler(p.srv).
			Get("/main/admin").
			Cookies(sessionCookie(cookie)).
			Expect(t).
			Status(http.StatusOK).
			End()
	})
}

func TestAPIUsers(t *testing.T) {
	p := newPortal(t)

	_, err := p.users.Create("bob", "pw1", users.RoleUser)
	require.NoError(t, err)

	t.Run("admin sees the raw table", func(t *testing.T) {
		cookie := p.login(t, "admin", "admin123")
		apitest.New().
			Handler(p.srv).
			Get("/api/users").
			Cookies(sessionCookie(cookie)).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Equal("$[0].username", "admin")).
			Assert(jsonpath.Equal("$[0].role", "admin")).
			Assert(jsonpath.Equal("$[1].username", "bob")).
			Assert(jsonpath.Present("$[0].password")).
			Assert(jsonpath.Len("$", 2)).
			End()
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		cookie := p.login(t, "bob", "pw1")
		apitest.New().
			Handler(p.srv).
			Get("/api/users").
			Cookies(sessionCookie(cookie)).
			Expect(t).
			Status(http.StatusForbidden).
			End()
	})

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		apitest.New().
			Handler(p.srv).
			Get("/api/users").
			Expect(t).
			Status(http.StatusFound).
			Header("Location", "/login").
			End()
	})
}

func TestAPILogs(t *testing.T) {
	p := newPortal(t)
	cookie := p.login(t, "admin", "admin123")

	apitest.New().
		Handler(p.srv).
		Get("/api/logs").
		Cookies(sessionCookie(cookie)).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$[0].event", "BOOTSTRAP ADMIN")).
		Assert(jsonpath.Present("$[0].timestamp")).
		End()
}
