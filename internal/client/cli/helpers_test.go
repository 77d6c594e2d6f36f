package cli

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/session"
	"github.com/beehive-drones/admin/internal/fakeapi"
	"github.com/beehive-drones/admin/internal/logging"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@beehive.id"
	adminPassword = "beehive"
)

// startAPI runs a seeded fake backend for the duration of the test and
// returns its base URL.
func startAPI(t *testing.T) string {
	t.Helper()
	s, err := fakeapi.New(fakeapi.Config{
		SecretKey:     "cli-test",
		TokenTTL:      time.Hour,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		PerPage:       2,
		Seed:          true,
	}, logging.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

// stubPassword makes getPassword answer pw without touching the terminal.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

// newTestApp wires an App against a fresh fake backend with an in-memory
// session. input is everything the operator will type.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubPassword(t, adminPassword)

	holder := session.NewHolder(nil)
	api, err := client.NewHTTPClient(startAPI(t), client.WithTokenSource(holder))
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := newApp(api, api.Origin(), holder, nil, strings.NewReader(input), out)
	return a, out
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}
