package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"plearn/backend/internal/client"
	"plearn/backend/internal/model"
	"plearn/backend/internal/todo"
)

func loadList(ctx context.Context, api *client.Client, userID string) (*todo.List, error) {
	l := todo.NewList(api, userID)
	if err := l.Load(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

func printTasks(out io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "Belum ada tugas.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tJUDUL\tKATEGORI\tPRIORITAS\tDEADLINE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Title, t.Category, t.Prioritas, t.Deadline)
	}
	_ = tw.Flush()
}

func runTodoList(ctx context.Context, cfg *Config, api *client.Client, userID string) error {
	l, err := loadList(ctx, api, userID)
	if err != nil {
		return err
	}
	printTasks(cfg.Stdout, l.Tasks())
	return nil
}

func runTodoAdd(ctx context.Context, cfg *Config, api *client.Client, userID string, args cmdTodoAdd) error {
	l := todo.NewList(api, userID)
	err := l.Add(ctx, model.Task{
		Title:     args.Title,
		Desc:      args.Desc,
		Category:  args.Category,
		Prioritas: args.Priority,
		Deadline:  args.Deadline,
	})
	if err != nil {
		return err
	}
	printTasks(cfg.Stdout, l.Tasks())
	return nil
}

func runTodoDone(ctx context.Context, cfg *Config, api *client.Client, userID, id string) error {
	l, err := loadList(ctx, api, userID)
	if err != nil {
		return err
	}
	if err := l.Toggle(ctx, id); err != nil {
		return err
	}
	printTasks(cfg.Stdout, l.Tasks())
	return nil
}

func runTodoRm(ctx context.Context, cfg *Config, api *client.Client, userID, id string) error {
	l, err := loadList(ctx, api, userID)
	if err != nil {
		return err
	}
	if err := l.Remove(ctx, id); err != nil {
		return err
	}
	printTasks(cfg.Stdout, l.Tasks())
	return nil
}

func runTodoCompleteAll(ctx context.Context, cfg *Config, api *client.Client, userID string) error {
	l, err := loadList(ctx, api, userID)
	if err != nil {
		return err
	}
	if err := l.CompleteAll(ctx); err != nil {
		return err
	}
	printTasks(cfg.Stdout, l.Tasks())
	return nil
}
