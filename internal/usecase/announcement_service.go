package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/announcement"
	"github.com/itsSambuddha/secons-api/internal/domain/user"
	idgen "github.com/itsSambuddha/secons-api/internal/platform/id"
	"github.com/itsSambuddha/secons-api/internal/platform/logging"
)

type AnnouncementService struct {
	repo   announcement.Repository
	ids    idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewAnnouncementService(repo announcement.Repository, ids idgen.Generator, logger *logging.Logger) *AnnouncementService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AnnouncementService{
		repo:   repo,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
}

type AnnouncementInput struct {
	Title    string
	Body     string
	Audience string
	Pinned   bool
}

func (s *AnnouncementService) List(ctx context.Context) ([]announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

func (s *AnnouncementService) Create(ctx context.Context, actor user.Principal, in AnnouncementInput) (announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Create")
	defer span.End()

	noticeID, err := s.ids.NewID()
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("generate announcement id: %w", err)
	}

	a := announcement.Announcement{
		ID:       noticeID,
		Title:    strings.TrimSpace(in.Title),
		Body:     strings.TrimSpace(in.Body),
		Audience: strings.TrimSpace(in.Audience),
		PostedBy: actor.UserID,
		PostedAt: s.now(),
		Pinned:   in.Pinned,
	}
	if err := a.Validate(); err != nil {
		return announcement.Announcement{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return announcement.Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

func (s *AnnouncementService) SetPinned(ctx context.Context, id string, pinned bool) (announcement.Announcement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.SetPinned")
	defer span.End()

	a, exists, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("get announcement: %w", err)
	}
	if !exists {
		return announcement.Announcement{}, fmt.Errorf("%w: announcement=%s", ErrNotFound, id)
	}

	a.Pinned = pinned
	if err := s.repo.Save(ctx, a); err != nil {
		return announcement.Announcement{}, fmt.Errorf("save announcement: %w", err)
	}
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnnouncementService.Delete")
	defer span.End()

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: announcement=%s", ErrNotFound, id)
	}
	return nil
}
