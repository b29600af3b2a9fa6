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
	Add(ctx context.Context) error
	SelectSkill(ctx context.Context, arg string) error
	Presets(ctx context.Context) error
	View(ctx context.Context) error
	Search(ctx context.Context, skill string) error
	Refresh(ctx context.Context) error
	Delete(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit", or
// "logout". The prompt shows statusFn. Errors returned by command handlers
// are ignored here; handlers log their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cvboard (%s) > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			printlnFn("Available commands: add, presets, skill <name|number>, (l)ist, search <skill>, refresh, delete, logout, exit")

		case "add":
			_ = a.Add(ctx)

		case "presets":
			_ = a.Presets(ctx)

		case "skill":
			if arg == "" {
				printlnFn("Usage: skill <name|number>")
				continue
			}
			_ = a.SelectSkill(ctx, arg)

		case "l", "list", "view":
			_ = a.View(ctx)

		case "search":
			if arg == "" {
				printlnFn("Usage: search <skill>")
				continue
			}
			_ = a.Search(ctx, arg)

		case "refresh":
			_ = a.Refresh(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "logout":
			if a.Logout(ctx) == nil {
				return
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
