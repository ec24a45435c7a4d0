package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context, s *Session) error
	Login(ctx context.Context, s *Session) error
	Logout(ctx context.Context, s *Session) error
	AddRecipe(ctx context.Context, s *Session) error
	List(ctx context.Context, s *Session, query string) error
	Top(ctx context.Context, s *Session, limit int) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: add, list [query], top [n], logout, help, exit"
)

func prompt(s *Session) string {
	if s.LoggedIn() {
		return fmt.Sprintf("rk (%s)> ", s.Username)
	}
	return "rk> "
}

// runREPL reads one command per line from reader and dispatches it with the
// session s. Handler errors are printed and the loop goes on. It returns on
// EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, s *Session, reader *bufio.Reader, w io.Writer) {
	fmt.Fprintln(w, "Welcome to RecipeKeeper (type 'help' for commands)")
	for {
		fmt.Fprint(w, prompt(s))
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if s.LoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx, s)

		case "login":
			cmdErr = a.Login(ctx, s)

		case "logout":
			cmdErr = a.Logout(ctx, s)

		case "add":
			cmdErr = a.AddRecipe(ctx, s)

		case "l", "list":
			cmdErr = a.List(ctx, s, strings.Join(args, " "))

		case "top":
			limit := 0
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					fmt.Fprintln(w, "Usage: top [n], n > 0")
					continue
				}
				limit = n
			}
			cmdErr = a.Top(ctx, s, limit)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
	}
}
