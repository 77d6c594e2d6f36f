package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Fprintln

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	loggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context, resource string, page int) error
	Refresh(ctx context.Context, resource string) error
	Show(ctx context.Context, resource string, id int64) error
	Create(ctx context.Context, resource string) error
	Edit(ctx context.Context, resource string, id int64) error
	Delete(ctx context.Context, resource string, id int64, confirm bool) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: list <resource> [page], show <resource> <id>, create <resource>, " +
		"edit <resource> <id>, delete <resource> <id>, refresh <resource>, whoami, logout, help, exit\n" +
		"Resources: articles, careers, projects, products"
)

// runREPL starts a read–eval–print loop for the admin CLI.
//
// It reads a line from r, parses the first token as the command and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit". Errors returned by command handlers are not printed
// here; handlers report their own failures.
//
//	list <resource> [page]     show the list view, optionally a given page
//	show <resource> <id>       render one record
//	create <resource>          fill and submit a create form
//	edit <resource> <id>       fill and submit an edit form
//	delete <resource> <id>     delete after confirmation
//	refresh <resource>         re-fetch the list
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "beehive %s> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			printlnFn(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			if a.loggedIn() {
				printlnFn(w, helpLoggedIn)
			} else {
				printlnFn(w, helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "l", "ls", "list":
			if len(args) == 0 {
				printlnFn(w, "Usage: list <resource> [page]")
				continue
			}
			page := 0
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 1 {
					printlnFn(w, "page must be a positive number")
					continue
				}
				page = n
			}
			_ = a.List(ctx, args[0], page)

		case "refresh":
			if len(args) == 0 {
				printlnFn(w, "Usage: refresh <resource>")
				continue
			}
			_ = a.Refresh(ctx, args[0])

		case "create", "add", "new":
			if len(args) == 0 {
				printlnFn(w, "Usage: create <resource>")
				continue
			}
			_ = a.Create(ctx, args[0])

		case "show", "edit", "delete", "rm":
			if len(args) < 2 {
				printlnFn(w, fmt.Sprintf("Usage: %s <resource> <id>", cmd))
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id < 1 {
				printlnFn(w, "id must be a positive number")
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, args[0], id)
			case "edit":
				_ = a.Edit(ctx, args[0], id)
			default:
				_ = a.Delete(ctx, args[0], id, true)
			}

		case "exit", "quit":
			printlnFn(w, "Bye!")
			return

		default:
			printlnFn(w, "Unknown command:", cmd)
		}
	}
}
