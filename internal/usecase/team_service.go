package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/team"
	"github.com/itsSambuddha/secons-api/internal/domain/user"
	"github.com/itsSambuddha/secons-api/internal/platform/logging"
)

// TeamService exposes the festival leaderboard and the point-award
// operation, the only mutation teams see after seeding.
type TeamService struct {
	teamRepo team.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamService(teamRepo team.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		logger:   logger,
		now:      time.Now,
	}
}

type AwardInput struct {
	EventRef string
	Points   int
	Position int
	Reason   string
}

func (in AwardInput) validate() error {
	if strings.TrimSpace(in.EventRef) == "" {
		return fmt.Errorf("event reference is required")
	}
	if in.Points == 0 {
		return fmt.Errorf("points must be non-zero")
	}
	if in.Position < 0 {
		return fmt.Errorf("position must be non-negative")
	}
	return nil
}

// List returns teams ordered by cumulative points, highest first.
func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].TotalPoints != teams[j].TotalPoints {
			return teams[i].TotalPoints > teams[j].TotalPoints
		}
		return teams[i].Name < teams[j].Name
	})
	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	t, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
	}
	return t, nil
}

// AwardPoints appends one award and bumps the cached total in the same
// save, keeping the total equal to the sum of the award list.
func (s *TeamService) AwardPoints(ctx context.Context, actor user.Principal, teamID string, in AwardInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AwardPoints")
	defer span.End()

	if err := in.validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	now := s.now()
	t.ApplyAward(team.PointAward{
		EventRef:  strings.TrimSpace(in.EventRef),
		Points:    in.Points,
		Position:  in.Position,
		AwardedBy: actor.UserID,
		AwardedAt: now,
		Reason:    strings.TrimSpace(in.Reason),
	})
	t.UpdatedAt = now

	if err := s.teamRepo.Save(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("save team: %w", err)
	}

	s.logger.InfoContext(ctx, "points awarded",
		"team_id", teamID, "points", in.Points, "event", in.EventRef, "actor", actor.UserID)
	return t, nil
}
