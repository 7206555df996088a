// Command portfolio-admin is a terminal client for the portfolio API. It
// drives the same session, guard, and list-controller plumbing the admin
// panel uses, with credentials persisted in a token file between runs.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gnwofoke/portfolio-api/internal/client"
)

type commandFn func(appCtx *appContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

// appContext carries the shared client wiring into every command.
type appContext struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Client   *client.Client
	Sessions *client.SessionManager
	Guard    *client.Guard
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	appCtx, err := newAppContext(logger)
	if err != nil {
		logger.Error("client setup failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal setup failure to shell scripts
	}

	if runErr := cmd.run(appCtx, os.Args[2:]); runErr != nil {
		if werr := writef(os.Stderr, "error: %v\n", runErr); werr != nil {
			logger.Error("print command error failed", "error", werr)
		}
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newAppContext(logger *slog.Logger) (*appContext, error) {
	baseURL := os.Getenv("PORTFOLIO_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	tokenPath := os.Getenv("PORTFOLIO_TOKEN_FILE")
	if tokenPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		tokenPath = filepath.Join(configDir, "portfolio", "token")
	}

	c := client.New(client.Options{
		BaseURL:     baseURL,
		Credentials: client.NewFileCredentials(tokenPath),
	})
	sessions := client.NewSessionManager(c)

	return &appContext{
		Ctx:      context.Background(),
		Logger:   logger,
		Client:   c,
		Sessions: sessions,
		Guard:    client.NewGuard(sessions),
	}, nil
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate and store the session token",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Revoke the session and clear the stored token",
			run:         runLogout,
		},
		"status": {
			name:        "status",
			description: "Show who is logged in",
			run:         runStatus,
		},
		"projects": {
			name:        "projects",
			description: "List, create, edit, and delete portfolio projects",
			run:         runProjects,
		},
		"posts": {
			name:        "posts",
			description: "List, create, edit, and delete blog posts",
			run:         runPosts,
		},
		"skills": {
			name:        "skills",
			description: "List, add, update, and delete skills",
			run:         runSkills,
		},
		"messages": {
			name:        "messages",
			description: "Read and manage the contact inbox",
			run:         runMessages,
		},
		"stats": {
			name:        "stats",
			description: "Show dashboard content counts",
			run:         runStats,
		},
		"upload": {
			name:        "upload",
			description: "Upload an image and print its URL",
			run:         runUpload,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: portfolio-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := cmds[name]
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin verifies the stored session before an admin command runs.
func ensureAdmin(appCtx *appContext) error {
	switch appCtx.Guard.Check(appCtx.Ctx) {
	case client.RenderProtected:
		return nil
	case client.RedirectToLogin, client.ShowLoading:
		return errors.New("not logged in; run: portfolio-admin login")
	default:
		return errors.New("not logged in; run: portfolio-admin login")
	}
}

func runLogin(appCtx *appContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return errors.New("-email is required")
	}
	if *password == "" {
		if err := writef(os.Stdout, "Password: "); err != nil {
			return err
		}
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimSpace(line)
	}

	if err := appCtx.Sessions.Login(appCtx.Ctx, *email, *password); err != nil {
		return err
	}

	snap := appCtx.Sessions.Snapshot()
	return writef(os.Stdout, "logged in as %s\n", snap.Principal.Email)
}

func runLogout(appCtx *appContext, args []string) error {
	if len(args) != 0 {
		return errors.New("logout takes no arguments")
	}
	appCtx.Sessions.Logout(appCtx.Ctx)
	return writef(os.Stdout, "logged out\n")
}

func runStatus(appCtx *appContext, args []string) error {
	if len(args) != 0 {
		return errors.New("status takes no arguments")
	}
	appCtx.Sessions.Initialize(appCtx.Ctx)
	snap := appCtx.Sessions.Snapshot()
	if snap.Principal == nil {
		return writef(os.Stdout, "not logged in\n")
	}
	return writef(os.Stdout, "logged in as %s (%s)\n", snap.Principal.Email, snap.Principal.DisplayName)
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
