// Package scheduler runs the catalog's periodic jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/openshelf/catalog/internal/database/instances"
)

// OverdueSweep periodically reports loaned copies whose due date has
// passed. The sweep only reads; nothing is mutated.
type OverdueSweep struct {
	repo     *instances.Repository
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewOverdueSweep creates a sweep with the given cron schedule.
func NewOverdueSweep(repo *instances.Repository, schedule string) *OverdueSweep {
	return &OverdueSweep{
		repo:     repo,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. Returns an error when the schedule does
// not parse.
func (s *OverdueSweep) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue sweep '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Overdue sweep: started with schedule '%s'", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *OverdueSweep) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.isRunning = false
	log.Printf("Overdue sweep: stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *OverdueSweep) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *OverdueSweep) runSweep() {
	if err := s.RunOnce(time.Now()); err != nil {
		log.Printf("Overdue sweep: failed: %v", err)
	}
}

// RunOnce performs a single sweep against the given reference time.
func (s *OverdueSweep) RunOnce(now time.Time) error {
	overdue, err := s.repo.Overdue(now)
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		log.Printf("Overdue sweep: no overdue copies")
		return nil
	}
	log.Printf("Overdue sweep: %d overdue copies", len(overdue))
	for _, inst := range overdue {
		log.Printf("  overdue: %q (%s), due back %s", inst.Book.Title, inst.Imprint, inst.DueBackDisplay())
	}
	return nil
}
