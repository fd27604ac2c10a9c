package insight

import (
	"context"
	"sync"

	"github.com/heartmarshall/community-engine/internal/domain"
)

type publisherMock struct {
	PublishFunc func(ctx context.Context, n domain.AdminNotification) error

	mu        sync.Mutex
	published []domain.AdminNotification
}

func (m *publisherMock) Publish(ctx context.Context, n domain.AdminNotification) error {
	m.mu.Lock()
	m.published = append(m.published, n)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, n)
	}
	return nil
}

func (m *publisherMock) Published() []domain.AdminNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AdminNotification(nil), m.published...)
}
