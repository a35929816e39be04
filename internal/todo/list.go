// Package todo keeps a user's task list in sync with the to-do API using
// optimistic updates.
package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"plearn/backend/internal/model"
	"plearn/backend/internal/optimistic"
	"plearn/backend/internal/parser"
)

// ErrTaskNotFound is returned for an ID missing from the local list.
var ErrTaskNotFound = errors.New("todo: task not found")

// API is the remote task store.
type API interface {
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	CompleteTasks(ctx context.Context, userID string) error
}

// List is the client-side task list of one user.
type List struct {
	api    API
	userID string
	store  *optimistic.Store[model.Task]
	now    func() time.Time
}

// NewList returns an empty list; call Load to fetch the server state.
func NewList(api API, userID string) *List {
	return &List{
		api:    api,
		userID: userID,
		store:  optimistic.New[model.Task](nil),
		now:    time.Now,
	}
}

// Tasks returns the visible tasks in order.
func (l *List) Tasks() []model.Task {
	return l.store.Items()
}

// Load replaces the list with the server's.
func (l *List) Load(ctx context.Context) error {
	tasks, err := l.api.ListTasks(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("could not load tasks: %w", err)
	}
	l.store.Replace(tasks)
	return nil
}

// Add appends task under a temporary ID and swaps in the server's copy once
// created.
func (l *List) Add(ctx context.Context, task model.Task) error {
	task.UserID = l.userID
	if task.Status == "" {
		task.Status = model.TaskActive
	}
	tempID := "tmp-" + uuid.NewString()
	local := task
	local.ID = tempID
	local.CreatedAt = l.now()
	local.UpdatedAt = local.CreatedAt

	return l.store.Apply(ctx, optimistic.Mutation[model.Task]{
		Local: func(items []model.Task) []model.Task {
			return append(items, local)
		},
		Commit: func(ctx context.Context) (optimistic.Reconcile[model.Task], error) {
			created, err := l.api.CreateTask(ctx, task)
			if err != nil {
				return nil, fmt.Errorf("could not create task: %w", err)
			}
			return replaceByID(tempID, *created), nil
		},
	})
}

// AddItems submits parsed to-do items as new tasks. Every item is tried; the
// count of saved tasks is returned together with the joined failures.
func (l *List) AddItems(ctx context.Context, items []model.TodoItem) (int, error) {
	saved := 0
	var errs []error
	for i, item := range items {
		if err := l.Add(ctx, FromItem(item, l.now())); err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i+1, err))
			continue
		}
		saved++
	}
	return saved, errors.Join(errs...)
}

// Update replaces the task with the same ID.
func (l *List) Update(ctx context.Context, task model.Task) error {
	if _, ok := l.find(task.ID); !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, task.ID)
	}
	task.UserID = l.userID
	return l.store.Apply(ctx, optimistic.Mutation[model.Task]{
		Local: replaceByID(task.ID, task),
		Commit: func(ctx context.Context) (optimistic.Reconcile[model.Task], error) {
			updated, err := l.api.UpdateTask(ctx, task)
			if err != nil {
				return nil, fmt.Errorf("could not update task: %w", err)
			}
			return replaceByID(task.ID, *updated), nil
		},
	})
}

// Toggle flips a task between active and done.
func (l *List) Toggle(ctx context.Context, id string) error {
	task, ok := l.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if task.Status == model.TaskDone {
		task.Status = model.TaskActive
	} else {
		task.Status = model.TaskDone
	}
	return l.Update(ctx, task)
}

// Remove deletes a task. On failure it reappears at its original position.
func (l *List) Remove(ctx context.Context, id string) error {
	if _, ok := l.find(id); !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return l.store.Apply(ctx, optimistic.Mutation[model.Task]{
		Local: func(items []model.Task) []model.Task {
			out := make([]model.Task, 0, len(items))
			for _, t := range items {
				if t.ID != id {
					out = append(out, t)
				}
			}
			return out
		},
		Commit: func(ctx context.Context) (optimistic.Reconcile[model.Task], error) {
			if err := l.api.DeleteTask(ctx, id); err != nil {
				return nil, fmt.Errorf("could not delete task: %w", err)
			}
			return nil, nil
		},
	})
}

// CompleteAll marks every active task as done.
func (l *List) CompleteAll(ctx context.Context) error {
	return l.store.Apply(ctx, optimistic.Mutation[model.Task]{
		Local: func(items []model.Task) []model.Task {
			for i := range items {
				items[i].Status = model.TaskDone
			}
			return items
		},
		Commit: func(ctx context.Context) (optimistic.Reconcile[model.Task], error) {
			if err := l.api.CompleteTasks(ctx, l.userID); err != nil {
				return nil, fmt.Errorf("could not complete tasks: %w", err)
			}
			return nil, nil
		},
	})
}

func (l *List) find(id string) (model.Task, bool) {
	for _, t := range l.store.Items() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func replaceByID(id string, task model.Task) optimistic.Reconcile[model.Task] {
	return func(items []model.Task) []model.Task {
		for i := range items {
			if items[i].ID == id {
				items[i] = task
			}
		}
		return items
	}
}

// FromItem converts a parsed to-do item into an active task the to-do API
// accepts. Model output is loose, so values are normalised: priorities are
// lower-cased and mapped to low, medium or high; deadlines are cut to their
// date, falling back to now plus the default offset; a missing title is taken
// from the description or category.
func FromItem(item model.TodoItem, now time.Time) model.Task {
	desc := clip(strings.TrimSpace(item.Description), maxDescLen)
	category := clip(strings.TrimSpace(item.Category), maxCategoryLen)
	return model.Task{
		Title:     itemTitle(strings.TrimSpace(item.Title), desc, category),
		Desc:      desc,
		Category:  category,
		Prioritas: priority(item.Priority),
		Deadline:  deadline(item.Deadline, now),
		Status:    model.TaskActive,
	}
}

// Field limits enforced by POST /api/todo.
const (
	maxTitleLen    = 200
	maxDescLen     = 2000
	maxCategoryLen = 50
)

// DefaultTitle names an item that carries no text at all.
const DefaultTitle = "Tugas baru"

var priorityAliases = map[string]string{
	model.PriorityLow:    model.PriorityLow,
	model.PriorityMedium: model.PriorityMedium,
	model.PriorityHigh:   model.PriorityHigh,
	"rendah":             model.PriorityLow,
	"sedang":             model.PriorityMedium,
	"normal":             model.PriorityMedium,
	"tinggi":             model.PriorityHigh,
	"penting":            model.PriorityHigh,
	"urgent":             model.PriorityHigh,
}

func priority(raw string) string {
	if p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return p
	}
	return parser.DefaultPriority
}

var deadlineLayouts = []string{
	parser.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006",
}

func deadline(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(parser.DateLayout)
		}
	}
	return now.AddDate(0, 0, parser.DefaultDeadlineDays).Format(parser.DateLayout)
}

func itemTitle(title, desc, category string) string {
	switch {
	case title != "":
		return clip(title, maxTitleLen)
	case desc != "":
		line, _, _ := strings.Cut(desc, "\n")
		return clip(strings.TrimSpace(line), maxTitleLen)
	case category != "":
		return category
	}
	return DefaultTitle
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
