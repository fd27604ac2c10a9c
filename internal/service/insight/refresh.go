package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// Refresh re-mines every Technical discussion, stores the report and raises
// an admin notification when the top issue reaches the threshold and differs
// from the last one announced. The notification state row is locked first so
// concurrent refreshes announce a given state once.
func (s *Service) Refresh(ctx context.Context) (*domain.InsightReport, error) {
	var (
		report *domain.InsightReport
		raised *domain.AdminNotification
	)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		state, err := s.insights.NotifyStateForUpdate(txCtx)
		if err != nil {
			return fmt.Errorf("lock notify state: %w", err)
		}

		snapshot, err := s.discussions.Snapshot(txCtx, domain.CategoryTechnical)
		if err != nil {
			return fmt.Errorf("snapshot discussions: %w", err)
		}

		report = &domain.InsightReport{
			Insights:    Mine(snapshot, s.opts.TopN, s.opts.ExampleLimit),
			GeneratedAt: time.Now().UTC(),
		}
		if err := s.insights.SaveReport(txCtx, *report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}

		top, ok := report.Top()
		if !ok || top.Frequency < s.opts.NotifyThreshold || state.Announced(top) {
			return nil
		}

		n := newNotification(top, report.GeneratedAt)
		if err := s.notifications.Append(txCtx, n, s.opts.NotificationLimit); err != nil {
			return fmt.Errorf("append notification: %w", err)
		}
		if err := s.insights.SaveNotifyState(txCtx, domain.NotifyState{IssueType: top.IssueType, Frequency: top.Frequency}); err != nil {
			return fmt.Errorf("save notify state: %w", err)
		}
		raised = &n
		return nil
	})
	s.metrics.ObserveRefresh(err)
	if err != nil {
		return nil, err
	}

	if raised != nil {
		s.metrics.ObserveNotification()
		s.log.InfoContext(ctx, "admin notification raised",
			slog.String("notification_id", raised.ID.String()),
			slog.String("title", raised.Title),
		)
		s.publish(ctx, *raised)
	}

	return report, nil
}

// GetLatestInsights returns the stored report, computing one if none exists yet.
func (s *Service) GetLatestInsights(ctx context.Context) (*domain.InsightReport, error) {
	report, err := s.insights.LatestReport(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return s.Refresh(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("latest report: %w", err)
	}
	return report, nil
}

func (s *Service) publish(ctx context.Context, n domain.AdminNotification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.log.ErrorContext(ctx, "notification delivery failed",
			slog.String("notification_id", n.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func newNotification(top domain.Insight, at time.Time) domain.AdminNotification {
	msg := fmt.Sprintf("%d Technical discussions mention this issue.", top.Frequency)
	if len(top.ExampleDiscussions) > 0 {
		msg = fmt.Sprintf("%d Technical discussions mention this issue, e.g. %q.", top.Frequency, top.ExampleDiscussions[0])
	}
	return domain.AdminNotification{
		ID:        uuid.New(),
		Type:      domain.NotificationTechnicalIssue,
		Title:     "High Activity: " + top.IssueType,
		Message:   msg,
		Timestamp: at,
	}
}
