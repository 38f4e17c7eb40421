package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/domain/team"
	"github.com/itsSambuddha/secons-api/internal/domain/user"
	idgen "github.com/itsSambuddha/secons-api/internal/platform/id"
	"github.com/itsSambuddha/secons-api/internal/platform/logging"
)

const defaultConsoleListLimit = 20

// MatchService owns match record CRUD: validation, the append-only
// audit trail and the best-effort broadcast hook.
type MatchService struct {
	matchRepo    match.Repository
	teamRepo     team.Repository
	ids          idgen.Generator
	notifier     Notifier
	logger       *logging.Logger
	consoleLimit int
	now          func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	ids idgen.Generator,
	notifier Notifier,
	logger *logging.Logger,
) *MatchService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:    matchRepo,
		teamRepo:     teamRepo,
		ids:          ids,
		notifier:     notifier,
		logger:       logger,
		consoleLimit: defaultConsoleListLimit,
		now:          time.Now,
	}
}

// MatchDetails is a record with team and MVP references resolved to
// display names.
type MatchDetails struct {
	match.Record
	Team1Name string
	Team2Name string
	MVPName   string
}

// UpdateInput is a partial patch. Nil pointers leave fields untouched.
// A patch touching either score appends exactly one audit entry.
type UpdateInput struct {
	ScoreTeam1      *int
	ScoreTeam2      *int
	Status          *string
	Cricket         *cricket.CricketData
	Venue           *string
	RoundName       *string
	MVPTeamID       *string
	Note            string
	ExpectedVersion int64
}

func (s *MatchService) Create(ctx context.Context, actor user.Principal, in match.CreateInput) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	if err := in.Validate(); err != nil {
		return match.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, teamID := range []string{in.Team1ID, in.Team2ID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return match.Record{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return match.Record{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	recordID, err := s.ids.NewID()
	if err != nil {
		return match.Record{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now()
	rec := match.Record{
		ID:          recordID,
		Team1ID:     in.Team1ID,
		Team2ID:     in.Team2ID,
		SportName:   strings.TrimSpace(in.SportName),
		Venue:       strings.TrimSpace(in.Venue),
		ScheduledAt: in.ScheduledAt,
		RoundName:   strings.TrimSpace(in.RoundName),
		Format:      in.Format,
		Status:      match.StatusScheduled,
		ScoreTeam1:  in.ScoreTeam1,
		ScoreTeam2:  in.ScoreTeam2,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
		AuditTrail: []match.AuditEntry{{
			Actor:      actor.UserID,
			ScoreTeam1: in.ScoreTeam1,
			ScoreTeam2: in.ScoreTeam2,
			Reason:     match.AuditReasonInitialized,
			At:         now,
		}},
	}
	if rec.Format == "" {
		rec.Format = match.FormatStandard
	}

	if err := s.matchRepo.Create(ctx, rec); err != nil {
		return match.Record{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", rec.ID, "sport", rec.SportName, "actor", actor.UserID)
	return rec, nil
}

func (s *MatchService) Get(ctx context.Context, id string) (MatchDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	rec, exists, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return MatchDetails{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchDetails{}, fmt.Errorf("%w: match=%s", ErrNotFound, id)
	}

	details := MatchDetails{Record: rec}
	details.Team1Name = s.teamName(ctx, rec.Team1ID)
	details.Team2Name = s.teamName(ctx, rec.Team2ID)
	if rec.MVPTeamID != "" {
		details.MVPName = s.teamName(ctx, rec.MVPTeamID)
	}

	return details, nil
}

func (s *MatchService) teamName(ctx context.Context, teamID string) string {
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil || !exists {
		return teamID
	}
	return t.Name
}

// List returns records for the operator console, most recently updated
// first, capped at the console limit unless the filter asks otherwise.
func (s *MatchService) List(ctx context.Context, filter match.ListFilter) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if filter.Status != "" && !match.IsValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = s.consoleLimit
	}

	records, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return records, nil
}

// ListLive is the unbounded read behind the public 30s poll.
func (s *MatchService) ListLive(ctx context.Context) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListLive")
	defer span.End()

	records, err := s.matchRepo.List(ctx, match.ListFilter{Status: match.StatusLive})
	if err != nil {
		return nil, fmt.Errorf("list live matches: %w", err)
	}
	return records, nil
}

func (s *MatchService) Update(ctx context.Context, actor user.Principal, id string, patch UpdateInput) (match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

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
	if patch.ExpectedVersion > 0 && patch.ExpectedVersion != rec.Version {
		return match.Record{}, fmt.Errorf("%w: match %s was updated concurrently (version %d, expected %d)",
			ErrConflict, id, rec.Version, patch.ExpectedVersion)
	}

	statusChanged := false
	if patch.Status != nil {
		next := *patch.Status
		if !match.IsValidStatus(next) {
			return match.Record{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
		}
		if next != rec.Status {
			if !match.CanTransition(rec.Status, next) {
				return match.Record{}, fmt.Errorf("%w: cannot move %s match to %s", ErrConflict, rec.Status, next)
			}
			rec.Status = next
			statusChanged = true
		}
	}

	scoreTouched := false
	if patch.ScoreTeam1 != nil {
		if *patch.ScoreTeam1 < 0 {
			return match.Record{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
		}
		rec.ScoreTeam1 = *patch.ScoreTeam1
		scoreTouched = true
	}
	if patch.ScoreTeam2 != nil {
		if *patch.ScoreTeam2 < 0 {
			return match.Record{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
		}
		rec.ScoreTeam2 = *patch.ScoreTeam2
		scoreTouched = true
	}
	if patch.Cricket != nil {
		rec.Cricket = patch.Cricket.Clone()
	}
	if patch.Venue != nil {
		rec.Venue = strings.TrimSpace(*patch.Venue)
	}
	if patch.RoundName != nil {
		rec.RoundName = strings.TrimSpace(*patch.RoundName)
	}
	if patch.MVPTeamID != nil {
		rec.MVPTeamID = strings.TrimSpace(*patch.MVPTeamID)
	}
	rec.SeedCricketOnLive()

	now := s.now()
	if scoreTouched {
		reason := strings.TrimSpace(patch.Note)
		if reason == "" {
			reason = match.AuditReasonScoreUpdate
		}
		rec.AuditTrail = append(rec.AuditTrail, match.AuditEntry{
			Actor:      actor.UserID,
			ScoreTeam1: rec.ScoreTeam1,
			ScoreTeam2: rec.ScoreTeam2,
			Reason:     reason,
			At:         now,
		})
	}

	rec.Version++
	rec.UpdatedAt = now
	if err := s.matchRepo.Save(ctx, rec); err != nil {
		return match.Record{}, fmt.Errorf("save match: %w", err)
	}

	if scoreTouched || statusChanged {
		s.notifier.Publish(ctx, ScoreEvent{
			MatchID:    rec.ID,
			Status:     rec.Status,
			ScoreTeam1: rec.ScoreTeam1,
			ScoreTeam2: rec.ScoreTeam2,
			At:         now,
		})
	}

	return rec, nil
}

func (s *MatchService) Delete(ctx context.Context, actor user.Principal, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	deleted, err := s.matchRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: match=%s", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", id, "actor", actor.UserID)
	return nil
}
