package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/models"
	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/common"
)

// getSimpleText, getOptionalText, getConfirmation and getPassword are
// indirections used to facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getConfirmation = GetConfirmation
	getPassword     = GetPassword
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errCancelled        = errors.New("cancelled")
	errShuttingDown     = errors.New("shutting down")
)

// describeError turns a handler error into a message for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, common.ErrNoAccount):
		return "No account on this device. Type 'signup' to create one."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid credentials."
	case errors.Is(err, common.ErrInvalidWorkMode):
		return "Work mode must be remote, hybrid or office."
	case errors.Is(err, common.ErrStorageFailure):
		return "Could not access local storage, please try again."
	case errors.Is(err, errPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, errCancelled):
		return "Cancelled."
	case errors.Is(err, errShuttingDown):
		return "Shutting down."
	default:
		return "Error: " + err.Error()
	}
}

func (a *App) report(err error) error {
	fmt.Fprintln(a.out, describeError(err))
	return err
}

// Signup prompts for the account details and creates the local account.
// The password is asked twice and both copies are wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return a.report(errPasswordMismatch)
	}

	company, err := getSimpleText(a.reader, "Enter company (optional)", a.out)
	if err != nil {
		return err
	}
	mode, err := getSimpleText(a.reader, fmt.Sprintf("Work mode: remote, hybrid or office [%s]", models.DefaultWorkMode), a.out)
	if err != nil {
		return err
	}

	req := models.SignupRequest{
		Name:     name,
		Email:    email,
		Password: string(password),
		Company:  company,
	}
	if mode != "" {
		if req.WorkMode, err = models.ParseWorkMode(mode); err != nil {
			return a.report(err)
		}
	}

	if err := a.withSession(ctx, func(ctx context.Context) error { return a.session.Signup(ctx, req) }); err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	req := models.LoginRequest{Email: email, Password: string(password), RememberMe: remember}
	if err := a.withSession(ctx, func(ctx context.Context) error { return a.session.Login(ctx, req) }); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout asks for confirmation and closes the session. The account stays on
// the device.
func (a *App) Logout(ctx context.Context) error {
	ok, err := getConfirmation(a.reader, "Sign out?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		return a.report(errCancelled)
	}

	if err := a.withSession(ctx, a.session.Logout); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// Profile prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.State().User
	if u == nil {
		return a.report(common.ErrNoAccount)
	}

	rows := [][2]string{
		{"Name", u.Name},
		{"Email", u.Email},
		{"Company", u.Company},
		{"Work mode", string(u.WorkMode)},
		{"Phone", u.Phone},
		{"Position", u.Position},
		{"Avatar", u.Avatar},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(a.out, "%-10s %s\n", r[0]+":", r[1])
	}
	return nil
}

// Update walks through the editable fields showing the current values; an
// empty answer keeps a field. Only changed fields are sent.
func (a *App) Update(ctx context.Context) error {
	u := a.session.State().User
	if u == nil {
		return a.report(common.ErrNoAccount)
	}

	var upd models.ProfileUpdate
	fields := []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"Name", u.Name, &upd.Name},
		{"Email", u.Email, &upd.Email},
		{"Company", u.Company, &upd.Company},
		{"Phone", u.Phone, &upd.Phone},
		{"Position", u.Position, &upd.Position},
		{"Avatar URL", u.Avatar, &upd.Avatar},
	}
	for _, f := range fields {
		v, changed, err := getOptionalText(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			return err
		}
		if changed {
			*f.dst = models.String(v)
		}
	}

	mode, changed, err := getOptionalText(a.reader, "Work mode", string(u.WorkMode), a.out)
	if err != nil {
		return err
	}
	if changed {
		wm, err := models.ParseWorkMode(mode)
		if err != nil {
			return a.report(err)
		}
		upd.WorkMode = &wm
	}

	password, err := getPassword("New password (empty keeps the current one)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) > 0 {
		upd.Password = models.String(string(password))
	}

	if upd.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	if err := a.withSession(ctx, func(ctx context.Context) error { return a.session.UpdateProfile(ctx, upd) }); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

// Delete removes the account from this device after the user types "yes".
func (a *App) Delete(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This removes your account from this device. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		return a.report(errCancelled)
	}

	if err := a.withSession(ctx, a.session.DeleteAccount); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
