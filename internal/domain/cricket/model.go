package cricket

const (
	// OversPerInnings caps each innings; festival matches are 8 overs a side.
	OversPerInnings = 8
	BallsPerOver    = 6
)

const (
	BallWicket = "W"
	BallWide   = "WD"
	BallNoBall = "NB"
)

const (
	DecisionBat  = "bat"
	DecisionBowl = "bowl"
)

// InningsStats accumulates one side's batting innings. Balls stays in
// [0,5]; the sixth legal delivery carries into Overs.
type InningsStats struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"`
	Balls   int `json:"balls"`
}

type BatterStats struct {
	Name  string `json:"name"`
	Runs  int    `json:"runs"`
	Balls int    `json:"balls"`
}

type Batting struct {
	Striker    BatterStats `json:"striker"`
	NonStriker BatterStats `json:"nonStriker"`
}

// BowlerStats tracks the bowler currently operating; it is reset whole
// whenever a new bowler is confirmed.
type BowlerStats struct {
	Name    string `json:"name"`
	Wickets int    `json:"wickets"`
	Runs    int    `json:"runs"`
	Overs   int    `json:"overs"`
	Balls   int    `json:"balls"`
}

type Toss struct {
	Winner   string `json:"winner"`
	Decision string `json:"decision"`
}

// CricketData is the sport-specific sub-document of a match record.
// Team1 bats the first innings, Team2 chases.
type CricketData struct {
	Innings  int          `json:"innings"`
	Team1    InningsStats `json:"team1"`
	Team2    InningsStats `json:"team2"`
	Target   int          `json:"target,omitempty"`
	Batting  Batting      `json:"batting"`
	Bowling  BowlerStats  `json:"bowling"`
	ThisOver []string     `json:"thisOver"`
	Toss     *Toss        `json:"toss,omitempty"`
}

// NewData returns the zeroed sub-document created when a cricket match
// goes live.
func NewData() *CricketData {
	return &CricketData{Innings: 1}
}

func (d *CricketData) Clone() *CricketData {
	if d == nil {
		return nil
	}
	out := *d
	if d.ThisOver != nil {
		out.ThisOver = append([]string(nil), d.ThisOver...)
	}
	if d.Toss != nil {
		toss := *d.Toss
		out.Toss = &toss
	}
	return &out
}

func (d *CricketData) battingInnings() *InningsStats {
	if d.Innings == 2 {
		return &d.Team2
	}
	return &d.Team1
}

func (d *CricketData) chaseComplete() bool {
	if d.Innings != 2 {
		return false
	}
	if d.Team2.Overs >= OversPerInnings {
		return true
	}
	return d.Target > 0 && d.Team2.Runs >= d.Target
}

// RunsNeeded is the second-innings deficit, derived at read time for
// the public scoreboard. Zero before the chase starts.
func (d *CricketData) RunsNeeded() int {
	if d == nil || d.Innings != 2 || d.Target <= 0 {
		return 0
	}
	needed := d.Target - d.Team2.Runs
	if needed < 0 {
		return 0
	}
	return needed
}

// BallsRemaining is how many legal deliveries the chase has left.
func (d *CricketData) BallsRemaining() int {
	if d == nil || d.Innings != 2 {
		return 0
	}
	remaining := OversPerInnings*BallsPerOver - (d.Team2.Overs*BallsPerOver + d.Team2.Balls)
	if remaining < 0 {
		return 0
	}
	return remaining
}
