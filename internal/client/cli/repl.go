package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/raisineat/internal/client/gate"
)

// printFn and printlnFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	screen() gate.Screen
	Login(ctx context.Context) error
	AutoLogin(ctx context.Context) error
	Forget(ctx context.Context) error
	Cuisines(ctx context.Context) error
	Restaurants(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	authHelp      = "Available commands: login, autologin, forget, exit"
	dashboardHelp = "Available commands: cuisines, restaurants <cuisine> [page], show <restaurant-id>, whoami, logout, exit"
)

// runREPL reads commands line by line from in and dispatches them to a.
//
// The accepted commands depend on a.screen(): the auth stack before login,
// the dashboard stack after it. Commands of the other stack are reported as
// unknown. The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own user-facing messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printFn(statusFn())
		line, err := readLine(in)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		switch a.screen() {
		case gate.ScreenAuth:
			dispatchAuth(ctx, a, cmd)
		case gate.ScreenDashboard:
			dispatchDashboard(ctx, a, cmd, args)
		default:
			printlnFn("Loading, please wait...")
		}
	}
}

func dispatchAuth(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		printlnFn(authHelp)
	case "login":
		_ = a.Login(ctx)
	case "autologin":
		_ = a.AutoLogin(ctx)
	case "forget":
		_ = a.Forget(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func dispatchDashboard(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "help":
		printlnFn(dashboardHelp)
	case "cuisines", "c":
		_ = a.Cuisines(ctx)
	case "restaurants", "r":
		if len(args) == 0 {
			printlnFn("Usage: restaurants <cuisine> [page]")
			return
		}
		_ = a.Restaurants(ctx, args)
	case "show":
		if len(args) == 0 {
			printlnFn("Usage: show <restaurant-id>")
			return
		}
		_ = a.Show(ctx, args)
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}
