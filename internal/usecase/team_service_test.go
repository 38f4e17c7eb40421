package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/itsSambuddha/secons-api/internal/infrastructure/repository/memory"
)

func TestTeamService_AwardPointsKeepsTotalInStep(t *testing.T) {
	service := NewTeamService(memory.NewTeamRepository(memory.SeedTeams()), nil)
	awardedAt := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return awardedAt }

	updated, err := service.AwardPoints(t.Context(), operatorActor, memory.TeamIDAzure, AwardInput{
		EventRef: "cricket-final",
		Points:   10,
		Position: 1,
		Reason:   "Champions",
	})
	if err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	if updated.TotalPoints != 10 {
		t.Fatalf("total points = %d, want 10", updated.TotalPoints)
	}
	if len(updated.Awards) != 1 {
		t.Fatalf("awards = %d, want 1", len(updated.Awards))
	}
	award := updated.Awards[0]
	if award.EventRef != "cricket-final" || award.Points != 10 || award.Position != 1 {
		t.Fatalf("unexpected award: %+v", award)
	}
	if award.AwardedBy != operatorActor.UserID {
		t.Fatalf("awarded by %q, want %q", award.AwardedBy, operatorActor.UserID)
	}
	if !award.AwardedAt.Equal(awardedAt) {
		t.Fatalf("awarded at %v, want %v", award.AwardedAt, awardedAt)
	}

	// A second award stacks on top; negative points deduct.
	updated, err = service.AwardPoints(t.Context(), operatorActor, memory.TeamIDAzure, AwardInput{
		EventRef: "conduct-penalty",
		Points:   -2,
		Reason:   "Late lineup",
	})
	if err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	if updated.TotalPoints != 8 {
		t.Fatalf("total points = %d, want 8", updated.TotalPoints)
	}
	if len(updated.Awards) != 2 {
		t.Fatalf("awards = %d, want 2", len(updated.Awards))
	}

	stored, err := service.Get(t.Context(), memory.TeamIDAzure)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.TotalPoints != 8 {
		t.Fatalf("stored total = %d, want 8", stored.TotalPoints)
	}
}

func TestTeamService_AwardPointsValidation(t *testing.T) {
	service := NewTeamService(memory.NewTeamRepository(memory.SeedTeams()), nil)

	cases := map[string]AwardInput{
		"missing event ref": {Points: 5},
		"zero points":       {EventRef: "quiz-round-1"},
		"negative position": {EventRef: "quiz-round-1", Points: 5, Position: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := service.AwardPoints(t.Context(), operatorActor, memory.TeamIDAzure, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	_, err := service.AwardPoints(t.Context(), operatorActor, "team-ghost", AwardInput{EventRef: "quiz-round-1", Points: 5})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTeamService_ListOrdersByPointsThenName(t *testing.T) {
	service := NewTeamService(memory.NewTeamRepository(memory.SeedTeams()), nil)

	if _, err := service.AwardPoints(t.Context(), operatorActor, memory.TeamIDSaffron, AwardInput{EventRef: "football-final", Points: 10}); err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}
	if _, err := service.AwardPoints(t.Context(), operatorActor, memory.TeamIDCrimson, AwardInput{EventRef: "football-final", Points: 4}); err != nil {
		t.Fatalf("AwardPoints: %v", err)
	}

	teams, err := service.List(t.Context())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(teams) != 4 {
		t.Fatalf("teams = %d, want 4", len(teams))
	}

	got := make([]string, 0, len(teams))
	for _, tm := range teams {
		got = append(got, tm.Name)
	}
	// Saffron 10, Crimson 4, then the zero-point teams alphabetically.
	want := []string{"Saffron House", "Crimson House", "Azure House", "Emerald House"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
