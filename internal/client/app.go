package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-chat-vault/internal/adapter"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"github.com/MKhiriev/go-chat-vault/models"
)

type command func(ctx context.Context, args []string) error

// App dispatches subcommands to the server adapter.
type App struct {
	server   adapter.ServerAdapter
	out      io.Writer
	commands map[string]command
	logger   *logger.Logger
}

// NewApp returns a [Client] that talks to the server through server and
// prints command results to out.
func NewApp(server adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		server: server,
		out:    out,
		logger: logger,
	}
	a.commands = map[string]command{
		"register": a.register,
		"login":    a.login,
		"me":       a.me,
		"list":     a.list,
		"update":   a.update,
		"whoami":   a.whoami,
		"version":  a.version,
	}
	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd(ctx, args[1:])
}

func (a *App) register(ctx context.Context, args []string) error {
	var req models.RegisterRequest
	fs := newFlagSet("register")
	fs.StringVar(&req.Username, "username", "", "unique username")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.DisplayName, "display-name", "", "optional display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.server.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return a.print(resp)
}

func (a *App) login(ctx context.Context, args []string) error {
	var req models.LoginRequest
	fs := newFlagSet("login")
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.server.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.print(resp)
}

func (a *App) me(ctx context.Context, args []string) error {
	if err := a.parseTokenOnly("me", args); err != nil {
		return err
	}

	profile, err := a.server.Me(ctx)
	if err != nil {
		return fmt.Errorf("me: %w", err)
	}
	return a.print(models.ProfileResponse{User: profile})
}

func (a *App) list(ctx context.Context, args []string) error {
	if err := a.parseTokenOnly("list", args); err != nil {
		return err
	}

	users, err := a.server.List(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return a.print(models.UsersResponse{Users: users})
}

func (a *App) update(ctx context.Context, args []string) error {
	var token, email, displayName, password string
	fs := newFlagSet("update")
	fs.StringVar(&token, "token", "", "bearer token")
	fs.StringVar(&email, "email", "", "new email address")
	fs.StringVar(&displayName, "display-name", "", "new display name")
	fs.StringVar(&password, "password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.useToken(token); err != nil {
		return err
	}

	// Only flags given on the command line are sent, so "-display-name=''"
	// clears the display name while omitting the flag leaves it untouched.
	var req models.UpdateProfileRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "email":
			req.Email = &email
		case "display-name":
			req.DisplayName = &displayName
		case "password":
			req.Password = &password
		}
	})
	if req.Changes().IsEmpty() {
		return ErrNothingToDo
	}

	profile, err := a.server.UpdateProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return a.print(models.ProfileResponse{User: profile})
}

// whoami decodes the token locally without contacting the server.
func (a *App) whoami(_ context.Context, args []string) error {
	var token string
	fs := newFlagSet("whoami")
	fs.StringVar(&token, "token", "", "bearer token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if token == "" {
		return ErrMissingToken
	}

	parsed, err := utils.ParseUnverifiedJWT(token)
	if err != nil {
		return fmt.Errorf("whoami: %w", err)
	}

	return a.print(struct {
		UserID    string    `json:"userId"`
		Username  string    `json:"username"`
		ExpiresAt time.Time `json:"expiresAt"`
		Expired   bool      `json:"expired"`
	}{
		UserID:    parsed.UserID,
		Username:  parsed.Username,
		ExpiresAt: parsed.ExpiresAt,
		Expired:   !parsed.ExpiresAt.IsZero() && time.Now().After(parsed.ExpiresAt),
	})
}

func (a *App) version(ctx context.Context, args []string) error {
	if err := newFlagSet("version").Parse(args); err != nil {
		return err
	}

	v, err := a.server.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}
	return a.print(models.VersionResponse{Version: v})
}

func (a *App) parseTokenOnly(name string, args []string) error {
	var token string
	fs := newFlagSet(name)
	fs.StringVar(&token, "token", "", "bearer token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.useToken(token)
}

func (a *App) useToken(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	a.server.SetToken(token)
	return nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}
