package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/config"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/models"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/services"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/session"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/storage"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{ closed bool }

func (c *nopCloser) Close() error { c.closed = true; return nil }

// newTestApp builds an App over an in-memory store whose stdin is input.
func newTestApp(t *testing.T, store *storage.MemoryStore, input string) (*App, *bytes.Buffer) {
	t.Helper()
	svc := services.NewAuthService(store, config.DefaultNamespace)
	ctrl := session.NewController(context.Background(), svc, logging.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, ctrl.WaitReady(ctx))

	var out bytes.Buffer
	return &App{
		config:  &config.Config{Namespace: config.DefaultNamespace},
		logger:  logging.Nop(),
		session: ctrl,
		store:   &nopCloser{},
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     &out,
	}, &out
}

func TestGetStatus(t *testing.T) {
	store := storage.NewMemoryStore()
	a, _ := newTestApp(t, store, "")
	assert.Equal(t, "(signed out)", a.getStatus())
	assert.False(t, a.isLoggedIn())

	require.NoError(t, a.session.Signup(context.Background(), models.SignupRequest{Name: "Ana", Password: "x"}))
	assert.Equal(t, "(Ana online)", a.getStatus())
	assert.True(t, a.isLoggedIn())

	require.NoError(t, a.session.UpdateProfile(context.Background(), models.ProfileUpdate{Name: models.String("")}))
	assert.Equal(t, "(online)", a.getStatus())
}

func TestRun_FullSessionOverREPL(t *testing.T) {
	capturePrintln(t)
	stubPasswords(t, "abcdefgh", "abcdefgh", "", "abcdefgh")

	store := storage.NewMemoryStore()
	a, out := newTestApp(t, store, strings.Join([]string{
		"signup", "Ana", "ana@x.com", "Acme", "",
		"update", "X", "", "", "", "", "", "",
		"logout", "y",
		"login", "ana@x.com", "n",
		"exit",
		"",
	}, "\n"))
	closer := a.store.(*nopCloser)

	require.NoError(t, a.Run(context.Background()))

	assert.True(t, closer.closed)
	assert.Contains(t, out.String(), "Welcome, Ana!")
	assert.Contains(t, out.String(), "Profile updated")
	assert.Contains(t, out.String(), "Signed out")
	assert.Contains(t, out.String(), "Login successful")

	s := a.session.State()
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "X", s.User.Name)
	assert.Equal(t, models.WorkModeHybrid, s.User.WorkMode)
}

func TestNewApp_MemoryDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageDriver = config.DriverMemory

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, a.session.WaitReady(context.Background()))
	assert.False(t, a.isLoggedIn())
	require.NoError(t, a.store.Close())
}

func TestNewApp_SQLiteRestoresSessionAcrossRestarts(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.LogLevel = "error"
	ctx := context.Background()

	first, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, first.session.WaitReady(ctx))
	require.NoError(t, first.session.Signup(ctx, models.SignupRequest{Name: "Ana", Email: "ana@x.com", Password: "abcdefgh"}))
	require.NoError(t, first.store.Close())

	second, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	defer second.store.Close()
	require.NoError(t, second.session.WaitReady(ctx))

	s := second.session.State()
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "Ana", s.User.Name)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageDriver = config.DriverMemory
	cfg.LogLevel = "chatty"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}
