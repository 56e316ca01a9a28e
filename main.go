package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/todo-app/config"
	"github.com/example/todo-app/modules/api"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework.
	// Order: independent modules first, then dependent modules.
	app.Register(auth.NewModule())
	app.Register(tasks.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Todo API started successfully!")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /register          - Register a new user")
	log.Println("  POST   /login             - Login and get a session token")
	log.Println("  GET    /health            - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /logout            - Revoke the current token")
	log.Println("  GET    /user              - Get current user profile")
	log.Println("  GET    /tasks             - List all tasks")
	log.Println("  POST   /tasks             - Create a task")
	log.Println("  PUT    /tasks/:id         - Update a task")
	log.Println("  DELETE /tasks/:id         - Delete a task")
	log.Println("  PATCH  /tasks/:id/toggle  - Toggle completion")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
