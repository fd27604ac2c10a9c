package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Badge is the tier derived from a contributor's points.
type Badge string

const (
	BadgeMember Badge = "Member"
	BadgePro    Badge = "Pro"
	BadgeExpert Badge = "Expert"
)

func (b Badge) String() string { return string(b) }

// BadgeThresholds configures badge tiers. Ceiling is the display target used
// for the progress bar of Expert contributors.
type BadgeThresholds struct {
	Pro     int
	Expert  int
	Ceiling int
}

// DefaultBadgeThresholds are used when configuration leaves them unset.
var DefaultBadgeThresholds = BadgeThresholds{Pro: 1000, Expert: 2000, Ceiling: 3000}

// BadgeFor maps points to a badge.
func (t BadgeThresholds) BadgeFor(points int) Badge {
	switch {
	case points >= t.Expert:
		return BadgeExpert
	case points >= t.Pro:
		return BadgePro
	default:
		return BadgeMember
	}
}

// NextThreshold is the points target of the next tier, or Ceiling for Expert.
func (t BadgeThresholds) NextThreshold(points int) int {
	switch t.BadgeFor(points) {
	case BadgeMember:
		return t.Pro
	case BadgePro:
		return t.Expert
	default:
		return t.Ceiling
	}
}

// Progress is points / next threshold, clamped to [0, 1].
func (t BadgeThresholds) Progress(points int) float64 {
	next := t.NextThreshold(points)
	if next <= 0 {
		return 1
	}
	p := float64(points) / float64(next)
	switch {
	case p > 1:
		return 1
	case p < 0:
		return 0
	}
	return p
}

// Contributor is a scored community member, keyed by display name.
type Contributor struct {
	Name               string
	AvatarInitials     string
	Points             int
	Badge              Badge
	DiscussionsStarted int
	CommentsPosted     int
	SolutionsProvided  int
	JoinDate           time.Time
}

// NewContributor builds the profile created on a member's first action.
func NewContributor(name string, joined time.Time) *Contributor {
	return &Contributor{
		Name:           name,
		AvatarInitials: Initials(name),
		Badge:          BadgeMember,
		JoinDate:       joined,
	}
}

// Initials returns up to two upper-case initials of the first two words of name.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		initials = append(initials, unicode.ToUpper([]rune(word)[0]))
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "?"
	}
	return string(initials)
}

// AwardReason names why points were granted.
type AwardReason string

const (
	ReasonDiscussionCreated AwardReason = "discussion_created"
	ReasonCommentPosted     AwardReason = "comment_posted"
	ReasonReactionReceived  AwardReason = "reaction_received"
	ReasonEventRegistration AwardReason = "event_registration"
	ReasonSolutionProvided  AwardReason = "solution_provided"
	ReasonSeedBalance       AwardReason = "seed_balance"
)

func (r AwardReason) String() string { return string(r) }

// IsValid reports whether r is one of the reasons the service itself awards.
// Other non-empty reasons are accepted by the scoreboard but touch no counter.
func (r AwardReason) IsValid() bool {
	switch r {
	case ReasonDiscussionCreated, ReasonCommentPosted, ReasonReactionReceived,
		ReasonEventRegistration, ReasonSolutionProvided, ReasonSeedBalance:
		return true
	}
	return false
}

// Label is r for known reasons and "other" otherwise, keeping metric label
// sets bounded.
func (r AwardReason) Label() string {
	if r.IsValid() {
		return string(r)
	}
	return "other"
}

// Point values of the fixed-amount awards.
const (
	PointsDiscussionCreated = 10
	PointsCommentPosted     = 5
	PointsEventRegistration = 15
	PointsSolutionProvided  = 20
)

// PointAward is one append-only entry of the points ledger.
type PointAward struct {
	ID          uuid.UUID
	Contributor string
	Amount      int
	Reason      AwardReason
	CreatedAt   time.Time
}
