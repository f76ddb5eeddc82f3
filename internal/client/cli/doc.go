// Package cli provides the interactive Smart-Desk terminal client.
//
// It wires configuration, logging, the credential store, the auth service and
// the session controller, then runs a REPL on top of them. The REPL waits for
// the stored session to be restored before it shows the first prompt, and
// the commands it offers depend on whether a user is signed in.
//
// Key features:
//   - Signup / Login / Logout
//   - Show and edit the profile
//   - Delete the local account
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// the process receives an interrupt. See App, Root and runREPL for details.
package cli
