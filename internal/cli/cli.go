// Package cli is the terminal front-end of PLEARN: a chat REPL, a quiz
// player and to-do commands, all talking to the HTTP API.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"plearn/backend/internal/client"
	"plearn/backend/internal/quiz"
	"plearn/backend/internal/storage"
)

type cmdChat struct {
	Mode     string `short:"m" default:"balanced" enum:"fluent,creative,precise,balanced,list,quiz" help:"Initial AI mode."`
	AudioDir string `help:"Directory synthesized speech is written to. Defaults to the system temp dir."`
}

type cmdQuiz struct{}

type cmdTodoList struct{}

type cmdTodoAdd struct {
	Title    string `arg:"" help:"Task title."`
	Desc     string `short:"d" help:"Description."`
	Category string `short:"c" help:"Category. The server fills a default when empty."`
	Priority string `short:"p" default:"medium" enum:"low,medium,high" help:"Priority."`
	Deadline string `help:"Deadline as YYYY-MM-DD."`
}

type cmdTodoDone struct {
	ID string `arg:"" help:"Task ID."`
}

type cmdTodoRm struct {
	ID string `arg:"" help:"Task ID."`
}

type cmdTodoCompleteAll struct{}

type cmdTodo struct {
	List        cmdTodoList        `cmd:"" help:"List tasks."`
	Add         cmdTodoAdd         `cmd:"" help:"Add a task."`
	Done        cmdTodoDone        `cmd:"" help:"Toggle a task between active and done."`
	Rm          cmdTodoRm          `cmd:"" help:"Delete a task."`
	CompleteAll cmdTodoCompleteAll `cmd:"" help:"Mark every active task as done."`
}

type cliArgs struct {
	Server  string `default:"http://localhost:8000" env:"PLEARN_SERVER" help:"Base URL of the PLEARN API."`
	User    string `default:"local" env:"PLEARN_USER" help:"User ID that owns the to-do list."`
	Store   string `default:"plearn-local.db" env:"PLEARN_STORE" help:"Local storage file holding the staged quiz."`
	Verbose bool   `short:"v" help:"Log debug information on stderr."`

	Chat cmdChat `cmd:"" help:"Chat with the assistant."`
	Quiz cmdQuiz `cmd:"" help:"Play the staged quiz."`
	Todo cmdTodo `cmd:"" help:"Manage the to-do list."`
}

// Config holds the process environment of the CLI.
type Config struct {
	Name        string
	Description string
	Exit        func(int)
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	// Scheduler drives the quiz timers. Nil uses the wall clock.
	Scheduler quiz.Scheduler
	// ClientOptions are passed to the API client.
	ClientOptions []client.Option
}

// NewConfig returns a Config bound to the process stdio.
func NewConfig() *Config {
	return &Config{
		Name:        "plearn",
		Description: "Terminal client for the PLEARN study assistant.",
		Exit:        os.Exit,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Run parses args and executes the selected command. It returns the process
// exit code.
func Run(args []string, cfg *Config) int {
	var cli cliArgs
	parser, err := kong.New(&cli,
		kong.Name(cfg.Name),
		kong.Description(cfg.Description),
		kong.Exit(cfg.Exit),
		kong.Writers(cfg.Stdout, cfg.Stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)
		return 2
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cfg.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := append([]client.Option{client.WithLogger(logger)}, cfg.ClientOptions...)
	api := client.New(cli.Server, opts...)

	cmd := kctx.Command()
	logger.Debug("Running command", "cmd", cmd, "server", cli.Server)

	switch cmd {
	case "chat":
		err = withStore(cli.Store, func(s *storage.Bolt) error {
			return runChat(ctx, cfg, logger, api, s, cli.User, cli.Chat)
		})
	case "quiz":
		err = withStore(cli.Store, func(s *storage.Bolt) error {
			return runQuiz(cfg, s)
		})
	case "todo list":
		err = runTodoList(ctx, cfg, api, cli.User)
	case "todo add <title>":
		err = runTodoAdd(ctx, cfg, api, cli.User, cli.Todo.Add)
	case "todo done <id>":
		err = runTodoDone(ctx, cfg, api, cli.User, cli.Todo.Done.ID)
	case "todo rm <id>":
		err = runTodoRm(ctx, cfg, api, cli.User, cli.Todo.Rm.ID)
	case "todo complete-all":
		err = runTodoCompleteAll(ctx, cfg, api, cli.User)
	default:
		err = fmt.Errorf("unrecognized command: %s", cmd)
	}

	if err != nil {
		fmt.Fprintf(cfg.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func withStore(path string, fn func(*storage.Bolt) error) error {
	s, err := storage.OpenBolt(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
