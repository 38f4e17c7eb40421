package cricket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// State names the engine's position in the scoring flow. Exactly one
// prompt can be outstanding at a time; while one is, ball events are
// rejected.
type State string

const (
	StateAwaitingToss    State = "awaiting_toss"
	StateAwaitingBatsmen State = "awaiting_batsmen"
	StateInPlay          State = "in_play"
	StateAwaitingBatter  State = "awaiting_batter"
	StateAwaitingBowler  State = "awaiting_bowler"
	StateInningsBreak    State = "innings_break"
	StateCompleted       State = "completed"
)

var (
	ErrPromptOutstanding = errors.New("a prompt is outstanding")
	ErrMatchCompleted    = errors.New("match already completed")
	ErrInvalidRunValue   = errors.New("invalid run value")
	ErrInvalidDecision   = errors.New("toss decision must be bat or bowl")
	ErrNameRequired      = errors.New("name is required")
	ErrWrongState        = errors.New("action does not apply in current state")
)

type ExtraKind string

const (
	ExtraWide   ExtraKind = "wide"
	ExtraNoBall ExtraKind = "noball"
)

// Engine applies one discrete ball event at a time to a working copy of
// CricketData. It is pure in-memory state: persistence happens only
// when the caller takes a Snapshot and syncs it to the store.
type Engine struct {
	data  *CricketData
	state State

	// A wicket on the over's final ball queues the bowler prompt
	// behind the batter prompt.
	pendingBowler bool
}

// NewEngine resumes an engine from persisted data, or starts fresh when
// data is nil.
func NewEngine(data *CricketData) *Engine {
	if data == nil {
		data = NewData()
	} else {
		data = data.Clone()
	}
	if data.Innings == 0 {
		data.Innings = 1
	}

	e := &Engine{data: data, state: inferState(data)}
	if e.state == StateAwaitingBatter {
		// A vacancy with freshly reset over counters means the
		// dismissal closed the over; the bowler prompt is still owed.
		inn := data.battingInnings()
		e.pendingBowler = inn.Overs > 0 && inn.Balls == 0 && len(data.ThisOver) == 0
	}
	return e
}

func inferState(d *CricketData) State {
	if d.chaseComplete() {
		return StateCompleted
	}
	if d.Toss == nil {
		return StateAwaitingToss
	}
	striker, nonStriker := d.Batting.Striker.Name, d.Batting.NonStriker.Name
	switch {
	case striker == "" && nonStriker == "":
		if d.Innings == 2 {
			return StateInningsBreak
		}
		return StateAwaitingBatsmen
	case striker == "" || nonStriker == "":
		// One vacated slot means a dismissal was synced before the
		// replacement was named.
		return StateAwaitingBatter
	}
	return StateInPlay
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Completed() bool {
	return e.state == StateCompleted
}

// Snapshot returns a deep copy of the working data for persistence.
func (e *Engine) Snapshot() *CricketData {
	return e.data.Clone()
}

// Prompt describes the outstanding prompt, or "" while in play.
func (e *Engine) Prompt() string {
	switch e.state {
	case StateAwaitingToss:
		return "toss result required"
	case StateAwaitingBatsmen:
		return "opening batsmen required"
	case StateAwaitingBatter:
		return "replacement batter required"
	case StateAwaitingBowler:
		return "next bowler required"
	case StateInningsBreak:
		return "second-innings batsmen required"
	default:
		return ""
	}
}

// SetToss records the toss. It is the first required prompt; nothing
// else is accepted before it.
func (e *Engine) SetToss(winner, decision string) error {
	if e.state == StateCompleted {
		return ErrMatchCompleted
	}
	if e.state != StateAwaitingToss {
		return fmt.Errorf("%w: toss already recorded", ErrWrongState)
	}
	winner = strings.TrimSpace(winner)
	if winner == "" {
		return fmt.Errorf("%w: toss winner", ErrNameRequired)
	}
	switch decision {
	case DecisionBat, DecisionBowl:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidDecision, decision)
	}

	e.data.Toss = &Toss{Winner: winner, Decision: decision}
	e.state = StateAwaitingBatsmen
	return nil
}

// SetBatsmen names the opening pair. It answers both the initial
// batsmen prompt and the innings-break prompt.
func (e *Engine) SetBatsmen(striker, nonStriker string) error {
	if e.state == StateCompleted {
		return ErrMatchCompleted
	}
	if e.state != StateAwaitingBatsmen && e.state != StateInningsBreak {
		return fmt.Errorf("%w: batsmen are already set", ErrWrongState)
	}
	striker = strings.TrimSpace(striker)
	nonStriker = strings.TrimSpace(nonStriker)
	if striker == "" || nonStriker == "" {
		return fmt.Errorf("%w: both batsmen", ErrNameRequired)
	}

	e.data.Batting = Batting{
		Striker:    BatterStats{Name: striker},
		NonStriker: BatterStats{Name: nonStriker},
	}
	e.state = StateInPlay
	return nil
}

// NewBatter fills the slot vacated by the dismissal. Mid-over that is
// the striker's end; after a wicket on the over's final ball the
// end-of-over swap has moved the vacancy to the non-striker's end.
func (e *Engine) NewBatter(name string) error {
	if e.state == StateCompleted {
		return ErrMatchCompleted
	}
	if e.state != StateAwaitingBatter {
		return fmt.Errorf("%w: no batter prompt outstanding", ErrWrongState)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: batter", ErrNameRequired)
	}

	if e.data.Batting.Striker.Name == "" {
		e.data.Batting.Striker = BatterStats{Name: name}
	} else {
		e.data.Batting.NonStriker = BatterStats{Name: name}
	}
	if e.pendingBowler {
		e.pendingBowler = false
		e.state = StateAwaitingBowler
	} else {
		e.state = StateInPlay
	}
	return nil
}

// NewBowler starts a fresh over under a new name with zeroed figures.
func (e *Engine) NewBowler(name string) error {
	if e.state == StateCompleted {
		return ErrMatchCompleted
	}
	if e.state != StateAwaitingBowler {
		return fmt.Errorf("%w: no bowler prompt outstanding", ErrWrongState)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: bowler", ErrNameRequired)
	}

	e.data.Bowling = BowlerStats{Name: name}
	e.state = StateInPlay
	return nil
}

// Ball scores a legal delivery worth runs off the bat. Odd values
// rotate the strike.
func (e *Engine) Ball(runs int) error {
	if err := e.requireInPlay(); err != nil {
		return err
	}
	switch runs {
	case 0, 1, 2, 3, 4, 6:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRunValue, runs)
	}

	inn := e.data.battingInnings()
	inn.Runs += runs
	inn.Balls++
	e.data.Batting.Striker.Runs += runs
	e.data.Batting.Striker.Balls++
	e.data.Bowling.Runs += runs
	e.data.Bowling.Balls++
	e.data.ThisOver = append(e.data.ThisOver, strconv.Itoa(runs))

	if runs%2 == 1 {
		e.swapStrike()
	}

	e.afterLegalBall(false)
	return nil
}

// Wicket dismisses the striker. The dismissed batter still faced the
// ball, so every ball count advances. Scoring blocks until NewBatter.
func (e *Engine) Wicket() error {
	if err := e.requireInPlay(); err != nil {
		return err
	}

	inn := e.data.battingInnings()
	inn.Wickets++
	inn.Balls++
	e.data.Batting.Striker.Balls++
	e.data.Bowling.Wickets++
	e.data.Bowling.Balls++
	e.data.ThisOver = append(e.data.ThisOver, BallWicket)

	// Vacate the dismissed batter's slot; NewBatter fills it.
	e.data.Batting.Striker = BatterStats{}

	e.afterLegalBall(true)
	return nil
}

// Extra records a wide or no-ball: one run to the batting side and
// against the bowler, no legal delivery consumed, batter untouched.
func (e *Engine) Extra(kind ExtraKind) error {
	if err := e.requireInPlay(); err != nil {
		return err
	}

	var token string
	switch kind {
	case ExtraWide:
		token = BallWide
	case ExtraNoBall:
		token = BallNoBall
	default:
		return fmt.Errorf("unknown extra kind %q", kind)
	}

	inn := e.data.battingInnings()
	inn.Runs++
	e.data.Bowling.Runs++
	e.data.ThisOver = append(e.data.ThisOver, token)

	// An extra can win the chase.
	if e.data.chaseComplete() {
		e.state = StateCompleted
	}
	return nil
}

func (e *Engine) requireInPlay() error {
	switch e.state {
	case StateInPlay:
		return nil
	case StateCompleted:
		return ErrMatchCompleted
	default:
		return fmt.Errorf("%w: %s", ErrPromptOutstanding, e.Prompt())
	}
}

func (e *Engine) swapStrike() {
	e.data.Batting.Striker, e.data.Batting.NonStriker =
		e.data.Batting.NonStriker, e.data.Batting.Striker
}

// afterLegalBall settles over completion, innings transition and match
// completion, in that precedence, then decides the next prompt.
func (e *Engine) afterLegalBall(wicket bool) {
	inn := e.data.battingInnings()

	overDone := inn.Balls >= BallsPerOver
	if overDone {
		inn.Overs++
		inn.Balls = 0
		e.data.Bowling.Overs++
		e.data.Bowling.Balls = 0
		e.data.ThisOver = nil
		e.swapStrike()
	}

	if e.data.chaseComplete() {
		e.state = StateCompleted
		return
	}

	if e.data.Innings == 1 && inn.Overs >= OversPerInnings {
		e.beginSecondInnings()
		return
	}

	if wicket {
		e.pendingBowler = overDone
		e.state = StateAwaitingBatter
		return
	}
	if overDone {
		e.state = StateAwaitingBowler
		return
	}
	e.state = StateInPlay
}

func (e *Engine) beginSecondInnings() {
	e.data.Target = e.data.Team1.Runs + 1
	e.data.Innings = 2
	e.data.ThisOver = nil
	e.data.Bowling = BowlerStats{}
	e.data.Batting = Batting{}
	e.pendingBowler = false
	e.state = StateInningsBreak
}
