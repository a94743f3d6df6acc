package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/MKhiriev/go-seed-api/internal/adapter"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	adapter  adapter.ServerAdapter
	session  *Session
	out      io.Writer
	commands map[string]command

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, session *Session, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		adapter: serverAdapter,
		session: session,
		out:     out,
		logger:  logger,
	}

	a.commands = map[string]command{
		"register":    {"register -email E [-password P] [-username U]", a.register},
		"login":       {"login -email E [-password P]", a.login},
		"logout":      {"logout", a.logout},
		"me":          {"me", a.me},
		"users":       {"users", a.users},
		"user":        {"user ID", a.user},
		"user-update": {"user-update ID [-email E] [-username U] [-password P]", a.userUpdate},
		"user-delete": {"user-delete ID", a.userDelete},
		"items":       {"items", a.items},
		"item":        {"item ID", a.item},
		"item-add":    {"item-add -name N [-number X]", a.itemAdd},
		"item-update": {"item-update ID [-name N] [-number X]", a.itemUpdate},
		"item-delete": {"item-delete ID", a.itemDelete},
		"version":     {"version", a.version},
	}

	return a
}

// Run executes the subcommand args[0] with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrNoCommand
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		a.usage()
		return nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	token, err := a.session.Load()
	if err != nil {
		return err
	}
	if token != "" {
		a.adapter.SetToken(token)
	}

	if err = cmd.run(ctx, args[1:]); err != nil {
		a.logger.Err(err).Str("command", name).Msg("command failed")
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: go-seed-client COMMAND [ARGS]")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", a.commands[name].usage)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flagSet("register")
	email := fs.String("email", "", "account email")
	username := fs.String("username", "", "optional display name")
	password := fs.String("password", "", "account password")
	if _, err := parseArgs(fs, args, 0); err != nil {
		return err
	}
	pw, err := a.passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	user, err := a.adapter.CreateUser(ctx, models.UserRegistration{
		Email:    *email,
		Username: *username,
		Password: pw,
	})
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if _, err := parseArgs(fs, args, 0); err != nil {
		return err
	}
	pw, err := a.passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	token, err := a.adapter.Login(ctx, *email, pw)
	if err != nil {
		return err
	}
	if err = a.session.Save(token.AccessToken); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "logged in")
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	if err := a.session.Clear(); err != nil {
		return err
	}
	a.adapter.SetToken("")

	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.adapter.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) users(ctx context.Context, _ []string) error {
	users, err := a.adapter.ListUsers(ctx)
	if err != nil {
		return err
	}
	return a.print(users)
}

func (a *App) user(ctx context.Context, args []string) error {
	ids, err := parseArgs(a.flagSet("user"), args, 1)
	if err != nil {
		return err
	}

	user, err := a.adapter.GetUser(ctx, ids[0])
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) userUpdate(ctx context.Context, args []string) error {
	fs := a.flagSet("user-update")
	email := fs.String("email", "", "new email")
	username := fs.String("username", "", "new display name")
	password := fs.String("password", "", "new password")
	ids, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "email":
			patch.Email = email
		case "username":
			patch.Username = username
		case "password":
			patch.Password = password
		}
	})
	if patch.IsEmpty() {
		return ErrNothingToUpdate
	}

	user, err := a.adapter.UpdateUser(ctx, ids[0], patch)
	if err != nil {
		return err
	}
	return a.print(user)
}

func (a *App) userDelete(ctx context.Context, args []string) error {
	ids, err := parseArgs(a.flagSet("user-delete"), args, 1)
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteUser(ctx, ids[0]); err != nil {
		return err
	}
	if err = a.session.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "user deleted")
	return nil
}

func (a *App) items(ctx context.Context, _ []string) error {
	items, err := a.adapter.ListItems(ctx)
	if err != nil {
		return err
	}
	return a.print(items)
}

func (a *App) item(ctx context.Context, args []string) error {
	ids, err := parseArgs(a.flagSet("item"), args, 1)
	if err != nil {
		return err
	}

	item, err := a.adapter.GetItem(ctx, ids[0])
	if err != nil {
		return err
	}
	return a.print(item)
}

func (a *App) itemAdd(ctx context.Context, args []string) error {
	fs := a.flagSet("item-add")
	name := fs.String("name", "", "item name")
	number := fs.Int64("number", 0, "optional item number")
	if _, err := parseArgs(fs, args, 0); err != nil {
		return err
	}

	item, err := a.adapter.CreateItem(ctx, models.Item{Name: *name, Number: *number})
	if err != nil {
		return err
	}
	return a.print(item)
}

func (a *App) itemUpdate(ctx context.Context, args []string) error {
	fs := a.flagSet("item-update")
	name := fs.String("name", "", "new item name")
	number := fs.Int64("number", 0, "new item number")
	ids, err := parseArgs(fs, args, 1)
	if err != nil {
		return err
	}

	var patch models.ItemPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "number":
			patch.Number = number
		}
	})
	if patch.IsEmpty() {
		return ErrNothingToUpdate
	}

	item, err := a.adapter.UpdateItem(ctx, ids[0], patch)
	if err != nil {
		return err
	}
	return a.print(item)
}

func (a *App) itemDelete(ctx context.Context, args []string) error {
	ids, err := parseArgs(a.flagSet("item-delete"), args, 1)
	if err != nil {
		return err
	}

	if err = a.adapter.DeleteItem(ctx, ids[0]); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "item deleted")
	return nil
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Server version: %s\n", v)
	return nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *App) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}

	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// parseArgs parses flags interleaved with positional arguments and requires
// exactly want positionals.
func parseArgs(fs *flag.FlagSet, args []string, want int) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	if len(positional) != want {
		return nil, fmt.Errorf("%w: expected %d positional argument(s), got %d", ErrInvalidArguments, want, len(positional))
	}
	return positional, nil
}
