package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	postgres "github.com/heartmarshall/community-engine/internal/adapter/postgres"
	"github.com/heartmarshall/community-engine/internal/domain"
)

// InsightRepo keeps the latest report and the last announcement in the
// single insight_state row.
type InsightRepo struct {
	pool postgres.Pool
}

// NewInsightRepo creates a new insight state repository.
func NewInsightRepo(pool postgres.Pool) *InsightRepo {
	return &InsightRepo{pool: pool}
}

const (
	saveReportSQL      = `UPDATE insight_state SET issues = $1, generated_at = $2 WHERE id = 1`
	latestReportSQL    = `SELECT issues, generated_at FROM insight_state WHERE id = 1`
	lockNotifyStateSQL = `SELECT last_notified_issue, last_notified_frequency FROM insight_state WHERE id = 1 FOR UPDATE`
	saveNotifyStateSQL = `UPDATE insight_state SET last_notified_issue = $1, last_notified_frequency = $2 WHERE id = 1`
)

// SaveReport replaces the latest report.
func (r *InsightRepo) SaveReport(ctx context.Context, report domain.InsightReport) error {
	issues := report.Insights
	if issues == nil {
		issues = []domain.Insight{}
	}
	raw, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, saveReportSQL, raw, report.GeneratedAt); err != nil {
		return postgres.StoreError("save insight report", err)
	}
	return nil
}

// LatestReport returns the last saved report, or domain.ErrNotFound before
// the first one.
func (r *InsightRepo) LatestReport(ctx context.Context) (*domain.InsightReport, error) {
	var (
		raw         []byte
		generatedAt *time.Time
	)
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, latestReportSQL).Scan(&raw, &generatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "insight_state", 1)
	}
	if generatedAt == nil {
		return nil, fmt.Errorf("insight report: %w", domain.ErrNotFound)
	}

	report := &domain.InsightReport{GeneratedAt: *generatedAt}
	if err := json.Unmarshal(raw, &report.Insights); err != nil {
		return nil, postgres.StoreError("decode insight report", err)
	}
	return report, nil
}

// NotifyStateForUpdate returns the last announcement and locks the state row
// until the surrounding transaction ends.
func (r *InsightRepo) NotifyStateForUpdate(ctx context.Context) (domain.NotifyState, error) {
	var s domain.NotifyState
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, lockNotifyStateSQL).Scan(&s.IssueType, &s.Frequency)
	if err != nil {
		return domain.NotifyState{}, postgres.MapError(err, "insight_state", 1)
	}
	return s, nil
}

// SaveNotifyState records the last announcement.
func (r *InsightRepo) SaveNotifyState(ctx context.Context, state domain.NotifyState) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, saveNotifyStateSQL, state.IssueType, state.Frequency)
	if err != nil {
		return postgres.StoreError("save notify state", err)
	}
	return nil
}
