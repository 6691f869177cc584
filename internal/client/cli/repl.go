package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dkaledin/teamtrack/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() session.State
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	ChooseName(ctx context.Context) error
	AddTask(ctx context.Context) error
	ListTasks(ctx context.Context, args []string) error
	EditTask(ctx context.Context, args []string) error
	DeleteTask(ctx context.Context, args []string) error
	Report(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Watch(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the TeamTrack CLI.
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
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in without a display name:
//	  - name           — pick a display name (required before anything else)
//	  - logout
//	  - exit | quit
//
//	Active member:
//	  - add            — log a task (interactive prompts)
//	  - list [all]     — list own tasks (today by default)
//	  - edit <id>      — edit a task
//	  - delete <id>    — delete a task
//	  - watch          — follow live task updates
//	  - logout
//	  - exit | quit
//
//	Active admin, additionally:
//	  - report [month] — show the aggregated team report
//	  - export [s3|email [recipient]] — export the daily report
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tt> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch a.state() {
			case session.StateAnonymous:
				printlnFn("Available commands: register, login, exit")
			case session.StateNeedsProfile:
				printlnFn("Available commands: name, logout, exit")
			default:
				if a.isAdmin() {
					printlnFn("Available commands: add, (l)ist [all], edit <id>, delete <id>, report [month], export [s3|email], watch, logout, exit")
				} else {
					printlnFn("Available commands: add, (l)ist [all], edit <id>, delete <id>, watch, logout, exit")
				}
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "name":
			_ = a.ChooseName(ctx)

		case "add":
			_ = a.AddTask(ctx)

		case "l", "list":
			_ = a.ListTasks(ctx, args)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.EditTask(ctx, args)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.DeleteTask(ctx, args)

		case "report":
			_ = a.Report(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "watch":
			_ = a.Watch(ctx, args)

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
