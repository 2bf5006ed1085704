package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sadopc/taskflow/internal/config"
	"github.com/sadopc/taskflow/internal/persist"
	"github.com/sadopc/taskflow/internal/store"
	"github.com/sadopc/taskflow/internal/todo"
)

// app is the wiring shared by every command: configuration, the settings
// database, the task backend and the loaded board.
type app struct {
	cfg     config.Config
	store   *store.Store
	adapter *persist.Adapter
	board   todo.Board
	logger  *log.Logger
	closers []io.Closer
}

func openApp(ctx context.Context, o *rootOptions) (*app, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.openLog(); err != nil {
		return nil, err
	}

	if o.ephemeral {
		a.store, err = store.NewMemory()
	} else {
		a.store, err = store.New(cfg.DBPath)
	}
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, a.store)

	var kv persist.KV = a.store
	switch {
	case o.ephemeral:
		kv = persist.NewMemoryKV()
	case cfg.UsesRedis():
		r, err := persist.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, r)
		kv = r
		a.logger.Printf("using redis at %s", cfg.RedisAddr)
	}

	a.adapter = persist.NewAdapter(kv, a.logger)
	tasks, cats := a.adapter.Load()
	a.board = todo.NewBoard(tasks, cats)
	a.logger.Printf("loaded %d tasks and %d categories", len(tasks), len(cats))
	return a, nil
}

func (a *app) openLog() error {
	if a.cfg.LogPath == "" {
		a.logger = log.New(io.Discard, "", 0)
		return nil
	}
	f, err := tea.LogToFile(a.cfg.LogPath, "taskflow")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.closers = append(a.closers, f)
	a.logger = log.Default()
	return nil
}

// save installs b and writes it to the backend.
func (a *app) save(b todo.Board) error {
	a.board = b
	if err := a.adapter.Save(b.Tasks, b.Categories); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// findTask resolves an exact id or a unique id prefix.
func findTask(b todo.Board, ref string) (todo.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return todo.Task{}, errors.New("task id must not be empty")
	}
	if t, ok := b.Task(ref); ok {
		return t, nil
	}
	var matches []todo.Task
	for _, t := range b.Tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return todo.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0], nil
	}
	return todo.Task{}, fmt.Errorf("%q matches %d tasks, use a longer id", ref, len(matches))
}

// findCategory resolves a category by id or case-insensitive name.
func findCategory(b todo.Board, ref string) (todo.Category, error) {
	if c, ok := b.Category(ref); ok {
		return c, nil
	}
	for _, c := range b.Categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return todo.Category{}, fmt.Errorf("unknown category %q", ref)
}

// shortID abbreviates generated UUIDs; other ids are shown as stored.
func shortID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id[:8]
	}
	return id
}
