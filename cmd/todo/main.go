// Command todo is a terminal client for the todo API.
//
// Usage:
//
//	todo register -name NAME -email EMAIL -password PASSWORD
//	todo login -email EMAIL -password PASSWORD
//	todo logout
//	todo whoami
//	todo            (opens the interactive task list)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/todo-app/client"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "\nInterrupted\n")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	globals := flag.NewFlagSet("todo", flag.ContinueOnError)
	configPath := globals.String("config", "", "path to config file")
	serverURL := globals.String("server", "", "server URL (overrides config)")
	if err := globals.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	store, err := tokenStore(cfg)
	if err != nil {
		return err
	}
	api := client.New(cfg.ServerURL, store)

	rest := globals.Args()
	command := ""
	if len(rest) > 0 {
		command = rest[0]
		rest = rest[1:]
	}

	switch command {
	case "register":
		return runRegister(ctx, api, rest)
	case "login":
		return runLogin(ctx, api, rest)
	case "logout":
		return runLogout(ctx, api)
	case "whoami":
		return runWhoami(ctx, api)
	case "", "tui":
		return runTUI(ctx, api)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func tokenStore(cfg *Config) (client.TokenStore, error) {
	path := cfg.TokenFile
	if path == "" {
		var err error
		path, err = client.DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate token path: %w", err)
		}
	}
	return client.NewFileTokenStore(path), nil
}

func runRegister(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 6 characters)")
	confirm := fs.String("confirm", "", "password confirmation (defaults to password)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *confirm == "" {
		*confirm = *password
	}

	if err := api.Register(ctx, *name, *email, *password, *confirm); err != nil {
		return err
	}
	fmt.Println("Registered. Run `todo login` to start a session.")
	return nil
}

func runLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func runLogout(ctx context.Context, api *client.Client) error {
	if err := api.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(ctx context.Context, api *client.Client) error {
	user, err := api.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	return nil
}
