package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt status: "(<name> online)" for a signed in
// user, "(signed out)" otherwise.
func (a *App) getStatus() string {
	s := a.session.State()
	if !s.IsAuthenticated() {
		return "(signed out)"
	}
	if s.User.Name == "" {
		return "(online)"
	}
	return fmt.Sprintf("(%s online)", s.User.Name)
}

// Root waits for the stored session to be restored and then runs the REPL
// until the user exits or ctx is cancelled.
func (a *App) Root(ctx context.Context) error {
	if err := a.session.WaitReady(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to Smart-Desk (type 'help' for commands)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.getStatus, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fmt.Fprintln(a.out, "\nBye!")
	}
	return nil
}
