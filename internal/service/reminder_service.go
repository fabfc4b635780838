package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mmynk/weddingplan/internal/datemath"
	"github.com/mmynk/weddingplan/internal/storage"
)

// Notifier delivers a reminder message to a project's members. The
// delivery channel (log line, email, push) is the implementation's
// business.
type Notifier interface {
	Notify(ctx context.Context, projectID, message string) error
}

// LogNotifier writes reminders to the structured log. It is the default
// sink when no external channel is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, projectID, message string) error {
	slog.Info("reminder", "project_id", projectID, "message", message)
	return nil
}

// ReminderService periodically sweeps for phases whose deadline falls
// inside the lookahead window and notifies their projects.
type ReminderService struct {
	store    storage.Store
	notifier Notifier
	window   time.Duration
	cron     *cron.Cron
}

// NewReminderService creates a ReminderService. window is how far ahead
// of a phase deadline reminders start firing.
func NewReminderService(store storage.Store, notifier Notifier, window time.Duration) *ReminderService {
	return &ReminderService{
		store:    store,
		notifier: notifier,
		window:   window,
		cron:     cron.New(),
	}
}

// Start schedules the sweep with the given cron spec (e.g. "0 9 * * *"
// for nine every morning) and starts the scheduler.
func (s *ReminderService) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Sweep(ctx); err != nil {
			slog.Error("reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}
	s.cron.Start()
	slog.Info("reminder scheduler started", "spec", spec, "window", s.window)
	return nil
}

// Stop stops the scheduler and waits for an in-flight sweep to finish.
func (s *ReminderService) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep finds phases ending within the lookahead window and sends one
// reminder per phase, with the open-task count included.
func (s *ReminderService) Sweep(ctx context.Context) error {
	now := time.Now()
	phases, err := s.store.ListPhasesEndingBetween(ctx, now.Unix(), now.Add(s.window).Unix())
	if err != nil {
		return err
	}

	for _, phase := range phases {
		var open int
		for _, task := range phase.Tasks {
			if !task.Completed {
				open++
			}
		}
		if open == 0 {
			continue
		}
		deadline := time.Unix(phase.EndAt, 0).UTC()
		message := fmt.Sprintf("Phase %q ends on %s with %d open task(s)",
			phase.Name, datemath.FormatShort(deadline), open)
		if err := s.notifier.Notify(ctx, phase.ProjectID, message); err != nil {
			slog.Error("failed to deliver reminder", "project_id", phase.ProjectID, "phase_id", phase.ID, "error", err)
		}
	}
	return nil
}
