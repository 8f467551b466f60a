package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/guardbox/internal/common"
)

// ChangePassword sets a new password for the session owner.
func (a *App) ChangePassword(ctx context.Context) error {
	password, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.userService.ChangeOwnPassword(ctx, a.session, string(password)); err != nil {
		fmt.Println("Could not change password:", err)
		return err
	}

	fmt.Println("Password changed")
	return nil
}

// ResetPassword lets an admin set a new password for another user.
func (a *App) ResetPassword(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter target username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.userService.ResetOtherPassword(ctx, a.session, userName, string(password)); err != nil {
		fmt.Println("Could not reset password:", err)
		return err
	}

	fmt.Printf("Password for %s reset\n", userName)
	return nil
}

// Users prints all accounts ordered by username. Admin only.
func (a *App) Users(ctx context.Context) error {
	list, err := a.userService.ListUsers(ctx, a.session)
	if err != nil {
		fmt.Println("Could not list users:", err)
		return err
	}

	for _, u := range list {
		fmt.Printf("%s\t%s\n", u.UserName, u.Role)
	}
	return nil
}

// ChangeDataDir switches the app to a different data directory, rebuilding
// the storage stack. The current session is closed.
func (a *App) ChangeDataDir(ctx context.Context) error {
	dir, err := getSimpleText(a.reader, "Enter data directory", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.initServices(dir); err != nil {
		fmt.Println("Could not switch data directory:", err)
		return err
	}

	fmt.Println("Data directory switched to", dir)
	return nil
}
