package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Update(ctx context.Context) error
	Logout(ctx context.Context) error
	Delete(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: signup, login, help, exit"
	helpSignedIn  = "Available commands: profile, update, logout, delete, help, exit"
)

// runREPL starts a simple read-eval-print loop for the Smart-Desk CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done or
// when the user types "exit" or "quit".
//
//	Signed out:
//	  - signup         create the account on this device
//	  - login          open a session
//
//	Signed in:
//	  - profile        show the profile
//	  - update         edit the profile
//	  - logout         close the session, keeping the account
//	  - delete         remove the account from this device
//
// Errors returned by handlers are ignored here; handlers report them to the
// user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("smartdesk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		loggedIn := a.isLoggedIn()
		switch cmd {
		case "help":
			if loggedIn {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "signup", "login":
			if loggedIn {
				printlnFn("Already signed in. Type 'logout' first.")
				continue
			}
			if cmd == "signup" {
				_ = a.Signup(ctx)
			} else {
				_ = a.Login(ctx)
			}

		case "profile", "update", "logout", "delete":
			if !loggedIn {
				printlnFn("Not signed in. Type 'login' or 'signup'.")
				continue
			}
			switch cmd {
			case "profile":
				_ = a.Profile(ctx)
			case "update":
				_ = a.Update(ctx)
			case "logout":
				_ = a.Logout(ctx)
			case "delete":
				_ = a.Delete(ctx)
			}

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
