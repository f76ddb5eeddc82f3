package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/config"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/models"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/services"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/session"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/storage"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/logging"
)

// sessionController is the part of session.Controller the CLI drives.
type sessionController interface {
	WaitReady(ctx context.Context) error
	State() session.State
	Subscribe() (<-chan session.State, func())
	Signup(ctx context.Context, req models.SignupRequest) error
	Login(ctx context.Context, req models.LoginRequest) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error
	DeleteAccount(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	session sessionController
	store   io.Closer
	reader  *bufio.Reader
	out     io.Writer

	// mu is held for the duration of every session call and while the
	// store is closed; closed is set once the store is gone.
	mu     sync.Mutex
	closed bool
}

// NewApp opens the credential store described by c and starts restoring the
// stored session. Logs go to stderr; the REPL talks on stdin/stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	store, closer, err := storage.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	as := services.NewAuthService(store, c.Namespace, services.WithLogger(logger))
	ctrl := session.NewController(ctx, as, logger)

	return &App{
		config:  c,
		logger:  logger,
		session: ctrl,
		store:   closer,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// withSession runs fn unless the app is shutting down. fn gets a context
// that is not cancelled by shutdown, so a started write completes before
// Run closes the store.
func (a *App) withSession(ctx context.Context, fn func(ctx context.Context) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errShuttingDown
	}
	return fn(context.WithoutCancel(ctx))
}

// closeStore waits for an in-flight session call, then closes the store.
func (a *App) closeStore(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	if err := a.store.Close(); err != nil {
		a.logger.Error(ctx, "close storage", "error", err)
	}
}

// Run blocks until the user exits or a termination signal arrives, then
// closes the credential store once no session call is running.
func (a *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	a.initSignalHandler(ctx, cancelFunc)
	go a.watchSession(ctx)

	err := a.Root(ctx)

	a.closeStore(ctx)
	return err
}

// watchSession logs every session state change until ctx is done.
func (a *App) watchSession(ctx context.Context) {
	states, unsubscribe := a.session.Subscribe()
	defer unsubscribe()

	for {
		select {
		case s, ok := <-states:
			if !ok {
				return
			}
			attrs := []any{"loading", s.IsLoading, "authenticated", s.IsAuthenticated()}
			if s.User != nil {
				attrs = append(attrs, "user_id", s.User.ID)
			}
			a.logger.Debug(ctx, "session state", attrs...)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated()
}
