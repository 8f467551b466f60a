package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/guardbox/internal/config"
	"github.com/dmitrijs2005/guardbox/internal/logging"
	"github.com/dmitrijs2005/guardbox/internal/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app, err := NewApp(cfg, log)
	require.NoError(t, err)
	return app
}

// stubInput replaces the interactive input seams with scripted answers.
func stubInput(t *testing.T, texts []string, passwords []string) {
	t.Helper()

	origText, origPw := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText, getPassword = origText, origPw
	})

	ti, pi := 0, 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if ti >= len(texts) {
			t.Fatalf("unexpected text prompt #%d", ti+1)
		}
		s := texts[ti]
		ti++
		return s, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if pi >= len(passwords) {
			t.Fatalf("unexpected password prompt #%d", pi+1)
		}
		pw := []byte(passwords[pi])
		pi++
		return pw, nil
	}
}

func TestApp_RegisterThenLogin(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	stubInput(t, []string{"alice", "user"}, []string{"pw1"})
	require.NoError(t, app.Register(ctx))
	assert.False(t, app.isLoggedIn(), "registration does not open a session")

	stubInput(t, []string{"alice"}, []string{"pw1"})
	require.NoError(t, app.Login(ctx))
	require.True(t, app.isLoggedIn())
	assert.Equal(t, models.RoleAdmin, app.session.Role, "first user becomes admin")
	assert.Contains(t, app.getStatus(), "alice")
}

func TestApp_LoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	stubInput(t, []string{"alice", "admin"}, []string{"pw1"})
	require.NoError(t, app.Register(ctx))

	stubInput(t, []string{"alice"}, []string{"wrong"})
	require.Error(t, app.Login(ctx))
	assert.False(t, app.isLoggedIn())
}

func TestApp_AddNoteAndList(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	stubInput(t, []string{"alice", "admin", "alice"}, []string{"pw1", "pw1"})
	require.NoError(t, app.Register(ctx))
	require.NoError(t, app.Login(ctx))

	app.reader = bufio.NewReader(strings.NewReader("remember the milk\n\n"))
	require.NoError(t, app.AddNote(ctx))
	require.NoError(t, app.ListNotes(ctx))

	notes, err := app.vaultService.Notes(ctx, app.session)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "remember the milk", notes[0].Content)
}

func TestApp_LogoutClearsSession(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	stubInput(t, []string{"alice", "admin", "alice"}, []string{"pw1", "pw1"})
	require.NoError(t, app.Register(ctx))
	require.NoError(t, app.Login(ctx))
	require.True(t, app.isLoggedIn())

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Empty(t, app.getStatus())
}

func TestApp_ChangeDataDirDropsSession(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	stubInput(t, []string{"alice", "admin", "alice"}, []string{"pw1", "pw1"})
	require.NoError(t, app.Register(ctx))
	require.NoError(t, app.Login(ctx))

	stubInput(t, []string{t.TempDir()}, nil)
	require.NoError(t, app.ChangeDataDir(ctx))
	assert.False(t, app.isLoggedIn())

	// the fresh directory has no accounts
	has, err := app.userService.HasUsers(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}
