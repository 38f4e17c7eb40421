package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/itsSambuddha/secons-api/internal/domain/announcement"
)

const announcementColumns = `id, title, body, audience, posted_by, posted_at, pinned`

type announcementTableModel struct {
	ID       string         `db:"id"`
	Title    string         `db:"title"`
	Body     string         `db:"body"`
	Audience sql.NullString `db:"audience"`
	PostedBy string         `db:"posted_by"`
	PostedAt time.Time      `db:"posted_at"`
	Pinned   bool           `db:"pinned"`
}

type AnnouncementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]announcement.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements
		ORDER BY pinned DESC, posted_at DESC`

	var rows []announcementTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select announcements: %w", err)
	}

	out := make([]announcement.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (announcement.Announcement, bool, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	var row announcementTableModel
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return announcement.Announcement{}, false, nil
		}
		return announcement.Announcement{}, false, fmt.Errorf("select announcement: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, a announcement.Announcement) error {
	query := `INSERT INTO announcements (` + announcementColumns + `) VALUES (
		:id, :title, :body, :audience, :posted_by, :posted_at, :pinned)`

	if _, err := r.db.NamedExecContext(ctx, query, toAnnouncementTableModel(a)); err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) Save(ctx context.Context, a announcement.Announcement) error {
	query := `UPDATE announcements SET
		title = :title, body = :body, audience = :audience, pinned = :pinned
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, toAnnouncementTableModel(a)); err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete announcement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete announcement rows affected: %w", err)
	}
	return affected > 0, nil
}

func toAnnouncementTableModel(a announcement.Announcement) announcementTableModel {
	return announcementTableModel{
		ID:       a.ID,
		Title:    a.Title,
		Body:     a.Body,
		Audience: nullString(a.Audience),
		PostedBy: a.PostedBy,
		PostedAt: a.PostedAt,
		Pinned:   a.Pinned,
	}
}

func (row announcementTableModel) toDomain() announcement.Announcement {
	return announcement.Announcement{
		ID:       row.ID,
		Title:    row.Title,
		Body:     row.Body,
		Audience: row.Audience.String,
		PostedBy: row.PostedBy,
		PostedAt: row.PostedAt,
		Pinned:   row.Pinned,
	}
}
