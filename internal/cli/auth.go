package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/guardbox/internal/common"
	"github.com/dmitrijs2005/guardbox/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, password and role and creates the
// account.
//
// Before any account exists the command is open to everyone and the new
// account becomes the admin regardless of the entered role. Afterwards
// only a logged-in admin may use it. The password bytes are wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	roleText, err := getSimpleText(a.reader, "Enter role (admin/user)", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.userService.Register(ctx, a.session, userName, string(password), models.Role(roleText))
	if err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	fmt.Printf("User %s registered with role %s\n", user.UserName, user.Role)
	return nil
}

// Login prompts for credentials and opens a session. Freeze and
// bad-credential failures are reported to the user; the password bytes are
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.authService.Login(ctx, userName, string(password))
	if err != nil {
		var frozen *common.FrozenError
		switch {
		case errors.As(err, &frozen):
			fmt.Println("Login rejected:", frozen.Error())
		case errors.Is(err, common.ErrorBadCredential):
			fmt.Println("Login failed:", err)
		default:
			fmt.Println("Login error:", err)
		}
		return err
	}

	a.session = session
	fmt.Printf("Logged in as %s (%s)\n", session.UserName, session.Role)
	return nil
}

// Logout drops the current session.
func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	fmt.Println("Logged out")
	return nil
}

// Reset runs the interactive emergency password reset: request a code,
// verify it, then set a new password. Each step reports its own failure
// and aborts the flow.
func (a *App) Reset(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.resetService.RequestReset(ctx, userName); err != nil {
		fmt.Println("Reset request failed:", err)
		return err
	}

	code, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.resetService.Verify(ctx, userName, code); err != nil {
		switch {
		case errors.Is(err, common.ErrorCodeExpired):
			fmt.Println("Code expired, request a new one")
		case errors.Is(err, common.ErrorBadCode):
			fmt.Println("Wrong code")
		default:
			fmt.Println("Verification failed:", err)
		}
		return err
	}

	password, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.resetService.CompleteReset(ctx, userName, string(password)); err != nil {
		fmt.Println("Reset failed:", err)
		return err
	}

	fmt.Println("Password reset. You can log in now.")
	return nil
}
