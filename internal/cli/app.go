// Package cli implements the interactive guardbox console: a small REPL
// over the account, protection and vault services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/guardbox/internal/config"
	"github.com/dmitrijs2005/guardbox/internal/filex"
	"github.com/dmitrijs2005/guardbox/internal/logging"
	"github.com/dmitrijs2005/guardbox/internal/repositories/users"
	"github.com/dmitrijs2005/guardbox/internal/repositories/vault"
	"github.com/dmitrijs2005/guardbox/internal/services"
)

// App wires the repositories and services together and holds the current
// session. All commands hang off App so the REPL can stay a thin dispatcher.
type App struct {
	config *config.Config
	log    logging.Logger

	authService  *services.AuthService
	userService  *services.UserService
	resetService *services.ResetService
	vaultService *services.VaultService

	session *services.Session
	reader  *bufio.Reader
}

// NewApp builds an App over the data directory from cfg. The directory is
// created if missing.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		config: cfg,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}
	if err := a.initServices(cfg.DataDir); err != nil {
		return nil, err
	}
	return a, nil
}

// initServices (re)builds the repository and service stack over dataDir.
// Used at startup and when the user switches data directories; any open
// session is dropped because it belongs to the previous store.
func (a *App) initServices(dataDir string) error {
	if err := filex.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("preparing data directory %q: %w", dataDir, err)
	}

	usersRepo := users.NewJSONFileRepository(dataDir)
	vaultRepo := vault.NewJSONFileRepository(dataDir)
	tracker := services.NewProtectionTracker(a.config.FreezeThreshold, a.config.FreezeDuration)

	a.authService = services.NewAuthService(usersRepo, tracker, a.config, a.log)
	a.userService = services.NewUserService(usersRepo, a.log)
	a.resetService = services.NewResetService(usersRepo, a.config, services.DefaultCodeGenerator, consoleDelivery, a.log)
	a.vaultService = services.NewVaultService(vaultRepo, a.log)

	a.config.DataDir = dataDir
	a.session = nil
	return nil
}

// consoleDelivery stands in for a real delivery channel (mail, SMS): the
// verification code is printed to the console.
func consoleDelivery(username, code string) {
	fmt.Printf("Verification code for %s: %s\n", username, code)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// Run greets the user and hands control to the REPL until EOF or exit.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to guardbox (type 'help' for commands)")

	if has, err := a.userService.HasUsers(ctx); err == nil && !has {
		fmt.Println("No accounts yet. Use 'register' to create the first (admin) account.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.session.UserName, a.session.Role)
}
