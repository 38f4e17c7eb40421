package postgres

import (
	"database/sql"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
)

type matchTableModel struct {
	ID          string         `db:"id"`
	Team1ID     string         `db:"team1_id"`
	Team2ID     string         `db:"team2_id"`
	SportName   string         `db:"sport_name"`
	Venue       string         `db:"venue"`
	ScheduledAt time.Time      `db:"scheduled_at"`
	RoundName   sql.NullString `db:"round_name"`
	Format      string         `db:"format"`
	Status      string         `db:"status"`
	ScoreTeam1  int            `db:"score_team1"`
	ScoreTeam2  int            `db:"score_team2"`
	CricketData []byte         `db:"cricket_data"`
	AuditTrail  []byte         `db:"audit_trail"`
	MVPTeamID   sql.NullString `db:"mvp_team_id"`
	Version     int64          `db:"version"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type auditEntryDoc struct {
	Actor      string    `json:"actor"`
	ScoreTeam1 int       `json:"scoreTeam1"`
	ScoreTeam2 int       `json:"scoreTeam2"`
	Reason     string    `json:"reason"`
	At         time.Time `json:"at"`
}

func matchToTableModel(rec match.Record) (matchTableModel, error) {
	row := matchTableModel{
		ID:          rec.ID,
		Team1ID:     rec.Team1ID,
		Team2ID:     rec.Team2ID,
		SportName:   rec.SportName,
		Venue:       rec.Venue,
		ScheduledAt: rec.ScheduledAt,
		RoundName:   nullString(rec.RoundName),
		Format:      rec.Format,
		Status:      rec.Status,
		ScoreTeam1:  rec.ScoreTeam1,
		ScoreTeam2:  rec.ScoreTeam2,
		MVPTeamID:   nullString(rec.MVPTeamID),
		Version:     rec.Version,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	if rec.Cricket != nil {
		raw, err := sonic.Marshal(rec.Cricket)
		if err != nil {
			return matchTableModel{}, fmt.Errorf("marshal cricket data: %w", err)
		}
		row.CricketData = raw
	}

	trail := make([]auditEntryDoc, 0, len(rec.AuditTrail))
	for _, e := range rec.AuditTrail {
		trail = append(trail, auditEntryDoc{
			Actor:      e.Actor,
			ScoreTeam1: e.ScoreTeam1,
			ScoreTeam2: e.ScoreTeam2,
			Reason:     e.Reason,
			At:         e.At,
		})
	}
	raw, err := sonic.Marshal(trail)
	if err != nil {
		return matchTableModel{}, fmt.Errorf("marshal audit trail: %w", err)
	}
	row.AuditTrail = raw

	return row, nil
}

func (row matchTableModel) toDomain() (match.Record, error) {
	rec := match.Record{
		ID:          row.ID,
		Team1ID:     row.Team1ID,
		Team2ID:     row.Team2ID,
		SportName:   row.SportName,
		Venue:       row.Venue,
		ScheduledAt: row.ScheduledAt,
		RoundName:   row.RoundName.String,
		Format:      row.Format,
		Status:      row.Status,
		ScoreTeam1:  row.ScoreTeam1,
		ScoreTeam2:  row.ScoreTeam2,
		MVPTeamID:   row.MVPTeamID.String,
		Version:     row.Version,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if len(row.CricketData) > 0 {
		var data cricket.CricketData
		if err := sonic.Unmarshal(row.CricketData, &data); err != nil {
			return match.Record{}, fmt.Errorf("unmarshal cricket data: %w", err)
		}
		rec.Cricket = &data
	}

	if len(row.AuditTrail) > 0 {
		var trail []auditEntryDoc
		if err := sonic.Unmarshal(row.AuditTrail, &trail); err != nil {
			return match.Record{}, fmt.Errorf("unmarshal audit trail: %w", err)
		}
		rec.AuditTrail = make([]match.AuditEntry, 0, len(trail))
		for _, e := range trail {
			rec.AuditTrail = append(rec.AuditTrail, match.AuditEntry{
				Actor:      e.Actor,
				ScoreTeam1: e.ScoreTeam1,
				ScoreTeam2: e.ScoreTeam2,
				Reason:     e.Reason,
				At:         e.At,
			})
		}
	}

	return rec, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
