package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// NotificationRepo is the bounded admin notification log.
type NotificationRepo struct {
	s *Store
}

// Notifications returns the notification repository of the store.
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

// Append adds n and drops the oldest entries beyond keep.
func (r *NotificationRepo) Append(ctx context.Context, n domain.AdminNotification, keep int) error {
	return r.s.write(ctx, func(t *txn) error {
		prev := r.s.notifications
		next := append(slices.Clone(prev), n)
		if keep > 0 && len(next) > keep {
			next = next[len(next)-keep:]
		}
		r.s.notifications = next
		t.onRollback(func() { r.s.notifications = prev })
		return nil
	})
}

// List returns up to limit notifications, newest first. limit <= 0 returns all.
func (r *NotificationRepo) List(ctx context.Context, limit int) ([]domain.AdminNotification, error) {
	var out []domain.AdminNotification
	err := r.s.read(ctx, func() error {
		for i := len(r.s.notifications) - 1; i >= 0; i-- {
			out = append(out, r.s.notifications[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// MarkRead sets the read flag of a notification.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(t *txn) error {
		for i := range r.s.notifications {
			if r.s.notifications[i].ID != id {
				continue
			}
			n := &r.s.notifications[i]
			prev := n.Read
			n.Read = true
			t.onRollback(func() { n.Read = prev })
			return nil
		}
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	})
}

// InsightRepo stores the latest insight report and the last announcement.
type InsightRepo struct {
	s *Store
}

// Insights returns the insight repository of the store.
func (s *Store) Insights() *InsightRepo { return &InsightRepo{s: s} }

// SaveReport replaces the latest report.
func (r *InsightRepo) SaveReport(ctx context.Context, report domain.InsightReport) error {
	return r.s.write(ctx, func(t *txn) error {
		prev := r.s.report
		report.Insights = slices.Clone(report.Insights)
		r.s.report = &report
		t.onRollback(func() { r.s.report = prev })
		return nil
	})
}

// LatestReport returns the last saved report.
func (r *InsightRepo) LatestReport(ctx context.Context) (*domain.InsightReport, error) {
	var out *domain.InsightReport
	err := r.s.read(ctx, func() error {
		if r.s.report == nil {
			return fmt.Errorf("insight report: %w", domain.ErrNotFound)
		}
		rep := *r.s.report
		rep.Insights = slices.Clone(rep.Insights)
		out = &rep
		return nil
	})
	return out, err
}

// NotifyStateForUpdate returns the last announcement state.
func (r *InsightRepo) NotifyStateForUpdate(ctx context.Context) (domain.NotifyState, error) {
	var out domain.NotifyState
	err := r.s.read(ctx, func() error {
		out = r.s.notifyState
		return nil
	})
	return out, err
}

// SaveNotifyState records the last announcement.
func (r *InsightRepo) SaveNotifyState(ctx context.Context, state domain.NotifyState) error {
	return r.s.write(ctx, func(t *txn) error {
		prev := r.s.notifyState
		r.s.notifyState = state
		t.onRollback(func() { r.s.notifyState = prev })
		return nil
	})
}
