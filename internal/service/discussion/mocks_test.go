package discussion

import (
	"context"
	"sync"

	"github.com/heartmarshall/community-engine/internal/domain"
)

type insightRefresherMock struct {
	RefreshFunc func(ctx context.Context) (*domain.InsightReport, error)

	mu    sync.Mutex
	calls int
}

func (m *insightRefresherMock) Refresh(ctx context.Context) (*domain.InsightReport, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.RefreshFunc == nil {
		return &domain.InsightReport{}, nil
	}
	return m.RefreshFunc(ctx)
}

func (m *insightRefresherMock) RefreshCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type pointAwarderMock struct {
	ApplyPointsFunc func(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error)
}

func (m *pointAwarderMock) ApplyPoints(ctx context.Context, name string, amount int, reason domain.AwardReason) (*domain.Contributor, error) {
	return m.ApplyPointsFunc(ctx, name, amount, reason)
}
