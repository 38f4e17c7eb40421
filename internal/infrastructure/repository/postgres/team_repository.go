package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/itsSambuddha/secons-api/internal/domain/team"
)

const teamColumns = `id, name, group_label, semester, total_points, awards, created_at, updated_at`

type teamTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	GroupLabel  string    `db:"group_label"`
	Semester    string    `db:"semester"`
	TotalPoints int       `db:"total_points"`
	Awards      []byte    `db:"awards"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type pointAwardDoc struct {
	EventRef  string    `json:"eventRef"`
	Points    int       `json:"points"`
	Position  int       `json:"position"`
	AwardedBy string    `json:"awardedBy"`
	AwardedAt time.Time `json:"awardedAt"`
	Reason    string    `json:"reason,omitempty"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	t, err := row.toDomain()
	if err != nil {
		return team.Team{}, false, err
	}
	return t, true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY id`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TeamRepository) Save(ctx context.Context, t team.Team) error {
	row, err := teamToTableModel(t)
	if err != nil {
		return err
	}

	query := `INSERT INTO teams (` + teamColumns + `) VALUES (
		:id, :name, :group_label, :semester, :total_points, :awards, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name, group_label = EXCLUDED.group_label,
		semester = EXCLUDED.semester, total_points = EXCLUDED.total_points,
		awards = EXCLUDED.awards, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}
	return nil
}

func teamToTableModel(t team.Team) (teamTableModel, error) {
	awards := make([]pointAwardDoc, 0, len(t.Awards))
	for _, a := range t.Awards {
		awards = append(awards, pointAwardDoc{
			EventRef:  a.EventRef,
			Points:    a.Points,
			Position:  a.Position,
			AwardedBy: a.AwardedBy,
			AwardedAt: a.AwardedAt,
			Reason:    a.Reason,
		})
	}
	raw, err := sonic.Marshal(awards)
	if err != nil {
		return teamTableModel{}, fmt.Errorf("marshal awards: %w", err)
	}

	return teamTableModel{
		ID:          t.ID,
		Name:        t.Name,
		GroupLabel:  t.GroupLabel,
		Semester:    t.Semester,
		TotalPoints: t.TotalPoints,
		Awards:      raw,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}, nil
}

func (row teamTableModel) toDomain() (team.Team, error) {
	t := team.Team{
		ID:          row.ID,
		Name:        row.Name,
		GroupLabel:  row.GroupLabel,
		Semester:    row.Semester,
		TotalPoints: row.TotalPoints,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if len(row.Awards) > 0 {
		var awards []pointAwardDoc
		if err := sonic.Unmarshal(row.Awards, &awards); err != nil {
			return team.Team{}, fmt.Errorf("unmarshal awards: %w", err)
		}
		t.Awards = make([]team.PointAward, 0, len(awards))
		for _, a := range awards {
			t.Awards = append(t.Awards, team.PointAward{
				EventRef:  a.EventRef,
				Points:    a.Points,
				Position:  a.Position,
				AwardedBy: a.AwardedBy,
				AwardedAt: a.AwardedAt,
				Reason:    a.Reason,
			})
		}
	}

	return t, nil
}
