package domain

import (
	"time"

	"github.com/google/uuid"
)

// Insight is one recurring technical issue found in discussions.
type Insight struct {
	IssueType          string   `json:"issueType"`
	Frequency          int      `json:"frequency"`
	ExampleDiscussions []string `json:"exampleDiscussions"`
}

// InsightReport is a ranked list of insights computed at GeneratedAt.
type InsightReport struct {
	Insights    []Insight
	GeneratedAt time.Time
}

// Top returns the highest ranked insight, if any.
func (r *InsightReport) Top() (Insight, bool) {
	if r == nil || len(r.Insights) == 0 {
		return Insight{}, false
	}
	return r.Insights[0], true
}

// NotifyState remembers which top issue was last announced so the same
// issue at the same frequency is not announced twice.
type NotifyState struct {
	IssueType string
	Frequency int
}

// Announced reports whether ins matches the last announcement.
func (s NotifyState) Announced(ins Insight) bool {
	return s.IssueType == ins.IssueType && s.Frequency == ins.Frequency
}

// NotificationType classifies admin notifications.
type NotificationType string

const NotificationTechnicalIssue NotificationType = "technical_issue"

func (t NotificationType) String() string { return string(t) }

// AdminNotification is an entry of the bounded admin notification log.
type AdminNotification struct {
	ID        uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Timestamp time.Time
	Read      bool
}
