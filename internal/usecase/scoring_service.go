package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/domain/user"
	"github.com/itsSambuddha/secons-api/internal/platform/logging"
)

// ScoringService holds one in-memory cricket engine per live match.
// The engine is the authoritative working copy between syncs; the model
// assumes a single scorer per match and last sync wins, except that a
// sync whose base version went stale is rejected for manual reconcile.
type ScoringService struct {
	matchRepo match.Repository
	notifier  Notifier
	logger    *logging.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*scoringSession
}

type scoringSession struct {
	engine      *cricket.Engine
	baseVersion int64
}

func NewScoringService(matchRepo match.Repository, notifier Notifier, logger *logging.Logger) *ScoringService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matchRepo: matchRepo,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*scoringSession),
	}
}

// ScoringStatus reports the engine's current position for the console.
type ScoringStatus struct {
	MatchID string
	State   cricket.State
	Prompt  string
	Data    *cricket.CricketData
}

// sessionLocked returns the live session for a match, creating one
// from the persisted cricketData on first use. Callers hold s.mu.
func (s *ScoringService) sessionLocked(ctx context.Context, matchID string) (*scoringSession, error) {
	if sess, ok := s.sessions[matchID]; ok {
		return sess, nil
	}

	rec, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !rec.IsCricket() {
		return nil, fmt.Errorf("%w: match %s is not a cricket match", ErrInvalidInput, matchID)
	}
	if rec.IsTerminal() {
		return nil, fmt.Errorf("%w: match %s is %s", ErrConflict, matchID, rec.Status)
	}
	if rec.Status != match.StatusLive {
		return nil, fmt.Errorf("%w: match %s is not live yet", ErrConflict, matchID)
	}

	sess := &scoringSession{
		engine:      cricket.NewEngine(rec.Cricket),
		baseVersion: rec.Version,
	}
	s.sessions[matchID] = sess
	return sess, nil
}

func (s *ScoringService) Status(ctx context.Context, matchID string) (ScoringStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Status")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionLocked(ctx, matchID)
	if err != nil {
		return ScoringStatus{}, err
	}

	return ScoringStatus{
		MatchID: matchID,
		State:   sess.engine.State(),
		Prompt:  sess.engine.Prompt(),
		Data:    sess.engine.Snapshot(),
	}, nil
}

func (s *ScoringService) SetToss(ctx context.Context, matchID, winner, decision string) (ScoringStatus, error) {
	return s.mutate(ctx, "usecase.ScoringService.SetToss", matchID, func(e *cricket.Engine) error {
		return e.SetToss(winner, decision)
	})
}

func (s *ScoringService) SetBatsmen(ctx context.Context, matchID, striker, nonStriker string) (ScoringStatus, error) {
	return s.mutate(ctx, "usecase.ScoringService.SetBatsmen", matchID, func(e *cricket.Engine) error {
		return e.SetBatsmen(striker, nonStriker)
	})
}

func (s *ScoringService) Ball(ctx context.Context, matchID string, runs int) (ScoringStatus, error) {
	return s.mutate(ctx, "usecase.ScoringService.Ball", matchID, func(e *cricket.Engine) error {
		return e.Ball(runs)
	})
}

func (s *ScoringService) Wicket(ctx context.Context, matchID string) (ScoringStatus, error) {
	return s.mutate(ctx, "usecase.ScoringService.Wicket", matchID, func(e *cricket.Engine) error {
		return e.Wicket()
	})
}

func (s *ScoringService) Extra(ctx context.Context, matchID string, kind cricket.ExtraKind) (ScoringStatus, error) {
	return s.mutate(ctx, "usecase.ScoringService.Extra", matchID, func(e *cricket.Engine) error {
		return e.Extra(kind)
	})
}

func (s *ScoringService) NewBatter(ctx context.Context, matchID, name string) (ScoringStatus, error) {
	return s.mutate(ctx, "usecase.ScoringService.NewBatter", matchID, func(e *cricket.Engine) error {
		return e.NewBatter(name)
	})
}

func (s *ScoringService) NewBowler(ctx context.Context, matchID, name string) (ScoringStatus, error) {
	return s.mutate(ctx, "usecase.ScoringService.NewBowler", matchID, func(e *cricket.Engine) error {
		return e.NewBowler(name)
	})
}

func (s *ScoringService) mutate(ctx context.Context, spanName, matchID string, op func(*cricket.Engine) error) (ScoringStatus, error) {
	ctx, span := startUsecaseSpan(ctx, spanName)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionLocked(ctx, matchID)
	if err != nil {
		return ScoringStatus{}, err
	}
	if err := op(sess.engine); err != nil {
		return ScoringStatus{}, err
	}

	return ScoringStatus{
		MatchID: matchID,
		State:   sess.engine.State(),
		Prompt:  sess.engine.Prompt(),
		Data:    sess.engine.Snapshot(),
	}, nil
}

// Sync commits the working state: cricketData, derived scores and the
// computed status go to the store in a single update. A failed sync
// leaves the session untouched so the operator can resubmit wholesale.
func (s *ScoringService) Sync(ctx context.Context, actor user.Principal, matchID string) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Sync")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionLocked(ctx, matchID)
	if err != nil {
		return match.Record{}, err
	}

	rec, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Record{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Record{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if rec.IsTerminal() {
		delete(s.sessions, matchID)
		return match.Record{}, fmt.Errorf("%w: match %s is %s", ErrConflict, matchID, rec.Status)
	}
	if rec.Version != sess.baseVersion {
		return match.Record{}, fmt.Errorf("%w: match %s was updated concurrently (version %d, session base %d)",
			ErrConflict, matchID, rec.Version, sess.baseVersion)
	}

	data := sess.engine.Snapshot()
	now := s.now()

	rec.Cricket = data
	rec.ScoreTeam1 = data.Team1.Runs
	rec.ScoreTeam2 = data.Team2.Runs
	if sess.engine.Completed() {
		rec.Status = match.StatusCompleted
	}
	rec.AuditTrail = append(rec.AuditTrail, match.AuditEntry{
		Actor:      actor.UserID,
		ScoreTeam1: rec.ScoreTeam1,
		ScoreTeam2: rec.ScoreTeam2,
		Reason:     match.AuditReasonScoreUpdate,
		At:         now,
	})
	rec.Version++
	rec.UpdatedAt = now

	if err := s.matchRepo.Save(ctx, rec); err != nil {
		return match.Record{}, fmt.Errorf("save match: %w", err)
	}

	if sess.engine.Completed() {
		delete(s.sessions, matchID)
	} else {
		sess.baseVersion = rec.Version
	}

	s.notifier.Publish(ctx, ScoreEvent{
		MatchID:    rec.ID,
		Status:     rec.Status,
		ScoreTeam1: rec.ScoreTeam1,
		ScoreTeam2: rec.ScoreTeam2,
		At:         now,
	})

	s.logger.InfoContext(ctx, "scoring sync committed",
		"match_id", matchID, "status", rec.Status,
		"score_team1", rec.ScoreTeam1, "score_team2", rec.ScoreTeam2,
		"actor", actor.UserID)
	return rec, nil
}

// DropSession discards a match's in-memory working copy, e.g. after a
// manual cancel. The persisted record is untouched.
func (s *ScoringService) DropSession(matchID string) {
	s.mu.Lock()
	delete(s.sessions, matchID)
	s.mu.Unlock()
}
