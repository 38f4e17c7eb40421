package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/itsSambuddha/secons-api/internal/domain/match"
)

const matchColumns = `id, team1_id, team2_id, sport_name, venue, scheduled_at, round_name,
	format, status, score_team1, score_team2, cricket_data, audit_trail, mvp_team_id,
	version, created_at, updated_at`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Record, bool, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return match.Record{}, false, nil
		}
		return match.Record{}, false, fmt.Errorf("select match: %w", err)
	}

	rec, err := row.toDomain()
	if err != nil {
		return match.Record{}, false, err
	}
	return rec, true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.ListFilter) ([]match.Record, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Sport != "" {
		args = append(args, "%"+filter.Sport+"%")
		conditions = append(conditions, fmt.Sprintf("sport_name ILIKE $%d", len(args)))
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY updated_at DESC, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, rec match.Record) error {
	row, err := matchToTableModel(rec)
	if err != nil {
		return err
	}

	query := `INSERT INTO matches (` + matchColumns + `) VALUES (
		:id, :team1_id, :team2_id, :sport_name, :venue, :scheduled_at, :round_name,
		:format, :status, :score_team1, :score_team2, :cricket_data, :audit_trail, :mvp_team_id,
		:version, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Save(ctx context.Context, rec match.Record) error {
	row, err := matchToTableModel(rec)
	if err != nil {
		return err
	}

	query := `UPDATE matches SET
		team1_id = :team1_id, team2_id = :team2_id, sport_name = :sport_name,
		venue = :venue, scheduled_at = :scheduled_at, round_name = :round_name,
		format = :format, status = :status,
		score_team1 = :score_team1, score_team2 = :score_team2,
		cricket_data = :cricket_data, audit_trail = :audit_trail,
		mvp_team_id = :mvp_team_id, version = :version, updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match: no row for id %s", rec.ID)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete match rows affected: %w", err)
	}
	return affected > 0, nil
}
