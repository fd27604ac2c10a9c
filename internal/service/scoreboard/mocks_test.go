package scoreboard

import (
	"context"

	"github.com/heartmarshall/community-engine/internal/domain"
)

type awardLedgerMock struct {
	AppendFunc            func(ctx context.Context, a domain.PointAward) error
	ListByContributorFunc func(ctx context.Context, name string, limit int) ([]domain.PointAward, error)
}

func (m *awardLedgerMock) Append(ctx context.Context, a domain.PointAward) error {
	return m.AppendFunc(ctx, a)
}

func (m *awardLedgerMock) ListByContributor(ctx context.Context, name string, limit int) ([]domain.PointAward, error) {
	return m.ListByContributorFunc(ctx, name, limit)
}
