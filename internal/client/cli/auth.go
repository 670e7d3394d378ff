package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/client/validation"
	"github.com/dmitrijs2005/raisineat/internal/common"
)

// getSimpleText, getPassword and getYesNo are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYesNo      = GetYesNo
)

// Login prompts for credentials, validates them and logs in. When the user
// opts in, the credentials are saved for auto-login.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: string(password)}
	if err := validation.Credentials(creds); err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	remember, err := getYesNo(a.reader, "Remember me for auto-login?", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logging in...")
	if err := a.session.Login(ctx, creds.Email, creds.Password); err != nil {
		fmt.Fprintln(a.out, a.session.Error())
		return err
	}

	if remember {
		if err := a.autologin.Remember(ctx, creds); err != nil {
			fmt.Fprintln(a.out, "Could not save credentials for auto-login.")
		}
	}
	fmt.Fprintln(a.out, "Successfully logged in!")
	return nil
}

// AutoLogin replays the saved credentials.
func (a *App) AutoLogin(ctx context.Context) error {
	ok, err := a.autologin.PerformAutoLogin(ctx)
	switch {
	case err != nil:
		fmt.Fprintf(a.out, "Auto login failed: %s Saved credentials were removed.\n", a.autologin.Error())
		return err
	case !ok:
		fmt.Fprintln(a.out, "No saved credentials.")
	default:
		fmt.Fprintln(a.out, "Successfully logged in!")
	}
	return nil
}

// Forget removes every saved credential.
func (a *App) Forget(ctx context.Context) error {
	if err := a.autologin.ClearSavedCredentials(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not clear saved credentials.")
		return err
	}
	fmt.Fprintln(a.out, "Saved credentials cleared.")
	return nil
}

// Logout signs out and clears the keychain.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Successfully logged out!")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (user id %s)\n", u.Email, u.ID)
	if a.store.HasToken(ctx) {
		fmt.Fprintln(a.out, "Session is stored on this device.")
	}
	return nil
}
