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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Reset(ctx context.Context) error
	AddNote(ctx context.Context) error
	ListNotes(ctx context.Context) error
	AddFile(ctx context.Context) error
	ListFiles(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Users(ctx context.Context) error
	ChangeDataDir(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the guardbox console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create the first (admin) account
//	  - login          — authenticate
//	  - reset          — emergency password reset with a verification code
//	  - datadir        — switch the data directory
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - addnote        — add a note
//	  - notes | list   — list notes
//	  - addfile        — add a file reference
//	  - files          — list file references
//	  - passwd         — change own password
//	  - register       — create an account (admin)
//	  - resetpw        — set another user's password (admin)
//	  - users          — list accounts (admin)
//	  - logout         — close the session
//	  - exit | quit    — leave the program
//
// Commands are dispatched regardless of session state; the handlers enforce
// permissions themselves. Any errors returned by command handlers are
// ignored here; handlers report their own errors. This keeps the REPL loop
// resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gbox %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: addnote, notes, addfile, files, passwd, register, resetpw, users, logout, exit")
			} else {
				printlnFn("Available commands: register, login, reset, datadir, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "addnote":
			_ = a.AddNote(ctx)

		case "notes", "list", "l":
			_ = a.ListNotes(ctx)

		case "addfile":
			_ = a.AddFile(ctx)

		case "files":
			_ = a.ListFiles(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "resetpw":
			_ = a.ResetPassword(ctx)

		case "users":
			_ = a.Users(ctx)

		case "datadir":
			_ = a.ChangeDataDir(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
