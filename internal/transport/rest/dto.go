package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// DiscussionResponse is the JSON form of a discussion. AuthorBadge is set
// when the author has a contributor profile.
type DiscussionResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Author      string            `json:"author"`
	AuthorBadge string            `json:"authorBadge,omitempty"`
	Category    string            `json:"category"`
	Content     string            `json:"content"`
	CreatedAt   time.Time         `json:"createdAt"`
	Solved      bool              `json:"solved"`
	Views       int               `json:"views"`
	ReplyCount  int               `json:"replyCount"`
	LikeCount   int               `json:"likeCount"`
	Comments    []CommentResponse `json:"comments,omitempty"`
}

// CommentResponse is the JSON form of a comment and its replies.
type CommentResponse struct {
	ID           uuid.UUID             `json:"id"`
	DiscussionID uuid.UUID             `json:"discussionId"`
	ParentID     *uuid.UUID            `json:"parentId,omitempty"`
	Author       string                `json:"author"`
	Content      string                `json:"content"`
	CreatedAt    time.Time             `json:"createdAt"`
	Reactions    domain.ReactionCounts `json:"reactions"`
	Replies      []CommentResponse     `json:"replies,omitempty"`
}

func toDiscussionResponse(d *domain.Discussion) DiscussionResponse {
	return DiscussionResponse{
		ID:         d.ID,
		Title:      d.Title,
		Author:     d.Author,
		Category:   d.Category.String(),
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
		Solved:     d.Solved,
		Views:      d.Views,
		ReplyCount: d.ReplyCount,
		LikeCount:  d.LikeCount,
		Comments:   toCommentResponses(d.Comments),
	}
}

func toCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:           c.ID,
		DiscussionID: c.DiscussionID,
		ParentID:     c.ParentID,
		Author:       c.Author,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
		Reactions:    c.Reactions,
		Replies:      toCommentResponses(c.Replies),
	}
}

func toCommentResponses(cs []domain.Comment) []CommentResponse {
	if len(cs) == 0 {
		return nil
	}
	out := make([]CommentResponse, len(cs))
	for i := range cs {
		out[i] = toCommentResponse(&cs[i])
	}
	return out
}

// ReactionResponse is the outcome of a reaction toggle.
type ReactionResponse struct {
	Applied   bool                  `json:"applied"`
	Type      string                `json:"type"`
	Direction string                `json:"direction"`
	Previous  *string               `json:"previous,omitempty"`
	Reactions domain.ReactionCounts `json:"reactions"`
}

func toReactionResponse(r *domain.ReactionResult) ReactionResponse {
	resp := ReactionResponse{
		Applied:   r.Applied,
		Type:      r.Delta.Type.String(),
		Direction: string(r.Delta.Direction),
	}
	if r.Previous != nil {
		prev := r.Previous.String()
		resp.Previous = &prev
	}
	if r.Comment != nil {
		resp.Reactions = r.Comment.Reactions
	}
	return resp
}

// ContributorResponse is a scored profile with its badge progress.
type ContributorResponse struct {
	Name               string    `json:"name"`
	AvatarInitials     string    `json:"avatarInitials"`
	Points             int       `json:"points"`
	Badge              string    `json:"badge"`
	Progress           float64   `json:"progress"`
	NextThreshold      int       `json:"nextThreshold"`
	DiscussionsStarted int       `json:"discussionsStarted"`
	CommentsPosted     int       `json:"commentsPosted"`
	SolutionsProvided  int       `json:"solutionsProvided"`
	JoinDate           time.Time `json:"joinDate"`
}

func toContributorResponse(c *domain.Contributor, t domain.BadgeThresholds) ContributorResponse {
	return ContributorResponse{
		Name:               c.Name,
		AvatarInitials:     c.AvatarInitials,
		Points:             c.Points,
		Badge:              c.Badge.String(),
		Progress:           t.Progress(c.Points),
		NextThreshold:      t.NextThreshold(c.Points),
		DiscussionsStarted: c.DiscussionsStarted,
		CommentsPosted:     c.CommentsPosted,
		SolutionsProvided:  c.SolutionsProvided,
		JoinDate:           c.JoinDate,
	}
}

// AwardResponse is one points ledger entry.
type AwardResponse struct {
	ID        uuid.UUID `json:"id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// EventResponse is the JSON form of an event. IsRegistered reflects the caller.
type EventResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	Description     string    `json:"description"`
	MaxUsers        int       `json:"maxUsers"`
	RegisteredUsers int       `json:"registeredUsers"`
	SeatsLeft       int       `json:"seatsLeft"`
	IsRegistered    bool      `json:"isRegistered"`
}

func toEventResponse(e *domain.Event, actor string) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Date:            e.Date,
		Description:     e.Description,
		MaxUsers:        e.MaxUsers,
		RegisteredUsers: e.RegisteredUsers,
		SeatsLeft:       e.SeatsLeft(),
		IsRegistered:    actor != "" && e.IsRegistered(actor),
	}
}

// RegistrationResponse is the outcome of an event registration.
type RegistrationResponse struct {
	Success bool          `json:"success"`
	Event   EventResponse `json:"event"`
}

// InsightReportResponse is the latest ranked list of technical issues.
type InsightReportResponse struct {
	Insights    []domain.Insight `json:"insights"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

func toInsightReportResponse(r *domain.InsightReport) InsightReportResponse {
	insights := r.Insights
	if insights == nil {
		insights = []domain.Insight{}
	}
	return InsightReportResponse{Insights: insights, GeneratedAt: r.GeneratedAt}
}

// NotificationResponse is an admin notification.
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

func toNotificationResponse(n domain.AdminNotification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type.String(),
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.Timestamp,
		Read:      n.Read,
	}
}
