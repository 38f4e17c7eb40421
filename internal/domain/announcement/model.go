package announcement

import (
	"fmt"
	"strings"
	"time"
)

// Announcement is a portal notice posted by an operator.
type Announcement struct {
	ID       string
	Title    string
	Body     string
	Audience string
	PostedBy string
	PostedAt time.Time
	Pinned   bool
}

func (a Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("announcement title is required")
	}
	if strings.TrimSpace(a.Body) == "" {
		return fmt.Errorf("announcement body is required")
	}
	return nil
}
