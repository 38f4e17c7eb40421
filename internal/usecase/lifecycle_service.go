package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/domain/user"
	"github.com/itsSambuddha/secons-api/internal/platform/logging"
)

// systemActor stamps audit entries written by the background scan.
const systemActor = "system"

// LifecycleService owns the match status state machine: manual operator
// transitions and the time-triggered scheduled-to-live scan.
type LifecycleService struct {
	matchRepo match.Repository
	notifier  Notifier
	logger    *logging.Logger
	now       func() time.Time
}

func NewLifecycleService(matchRepo match.Repository, notifier Notifier, logger *logging.Logger) *LifecycleService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LifecycleService{
		matchRepo: matchRepo,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Transition applies one manual status move. Terminal states reject
// everything; completing a cricket match freezes its cricketData.
func (s *LifecycleService) Transition(ctx context.Context, actor user.Principal, id, to, note string) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.Transition")
	defer span.End()

	if !match.IsValidStatus(to) {
		return match.Record{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}

	rec, exists, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return match.Record{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Record{}, fmt.Errorf("%w: match=%s", ErrNotFound, id)
	}
	if rec.IsTerminal() {
		return match.Record{}, fmt.Errorf("%w: match %s is %s", ErrConflict, id, rec.Status)
	}
	if !match.CanTransition(rec.Status, to) {
		return match.Record{}, fmt.Errorf("%w: cannot move %s match to %s", ErrConflict, rec.Status, to)
	}

	reason := strings.TrimSpace(note)
	if reason == "" {
		reason = "Status set to " + to
	}

	rec, err = s.apply(ctx, rec, to, actor.UserID, reason)
	if err != nil {
		return match.Record{}, err
	}
	return rec, nil
}

// AutoTransitionLive scans scheduled matches whose start time has
// passed and moves them to live. Safe to re-run: status is re-checked
// per record, so an already-live match is never re-fired.
func (s *LifecycleService) AutoTransitionLive(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LifecycleService.AutoTransitionLive")
	defer span.End()

	scheduled, err := s.matchRepo.List(ctx, match.ListFilter{Status: match.StatusScheduled})
	if err != nil {
		return 0, fmt.Errorf("list scheduled matches: %w", err)
	}

	now := s.now()
	transitioned := 0
	for _, candidate := range scheduled {
		if candidate.ScheduledAt.After(now) {
			continue
		}

		// The list may be stale next to a concurrent manual update;
		// only the current status decides.
		rec, exists, err := s.matchRepo.GetByID(ctx, candidate.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "auto-live re-read failed", "match_id", candidate.ID, "error", err)
			continue
		}
		if !exists || rec.Status != match.StatusScheduled {
			continue
		}

		if _, err := s.apply(ctx, rec, match.StatusLive, systemActor, match.AuditReasonAutoLive); err != nil {
			s.logger.WarnContext(ctx, "auto-live transition failed", "match_id", rec.ID, "error", err)
			continue
		}
		transitioned++
	}

	return transitioned, nil
}

// Run drives the auto-transition scan on a fixed interval until the
// context is cancelled.
func (s *LifecycleService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.AutoTransitionLive(ctx)
			if err != nil {
				s.logger.WarnContext(ctx, "auto-live scan failed", "error", err)
				continue
			}
			if count > 0 {
				s.logger.InfoContext(ctx, "auto-live scan", "transitioned", count)
			}
		}
	}
}

func (s *LifecycleService) apply(ctx context.Context, rec match.Record, to, actor, reason string) (match.Record, error) {
	now := s.now()

	rec.Status = to
	rec.SeedCricketOnLive()
	rec.AuditTrail = append(rec.AuditTrail, match.AuditEntry{
		Actor:      actor,
		ScoreTeam1: rec.ScoreTeam1,
		ScoreTeam2: rec.ScoreTeam2,
		Reason:     reason,
		At:         now,
	})
	rec.Version++
	rec.UpdatedAt = now

	if err := s.matchRepo.Save(ctx, rec); err != nil {
		return match.Record{}, fmt.Errorf("save match: %w", err)
	}

	s.notifier.Publish(ctx, ScoreEvent{
		MatchID:    rec.ID,
		Status:     rec.Status,
		ScoreTeam1: rec.ScoreTeam1,
		ScoreTeam2: rec.ScoreTeam2,
		At:         now,
	})
	return rec, nil
}
