package usecase

import (
	"context"
	"time"
)

// ScoreEvent is the best-effort broadcast emitted after any score or
// status affecting write. Delivery is fire-and-forget: a failed or
// dropped event never rolls back the persisted change.
type ScoreEvent struct {
	MatchID    string    `json:"matchId"`
	Status     string    `json:"status"`
	ScoreTeam1 int       `json:"scoreTeam1"`
	ScoreTeam2 int       `json:"scoreTeam2"`
	At         time.Time `json:"at"`
}

type Notifier interface {
	Publish(ctx context.Context, event ScoreEvent)
}

type noopNotifier struct{}

func (noopNotifier) Publish(_ context.Context, _ ScoreEvent) {}

func NewNoopNotifier() Notifier {
	return noopNotifier{}
}
