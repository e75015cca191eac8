package payment

import (
	"context"
	"errors"
)

type StubGateway struct {
	HasPendingPaymentsFunc func(ctx context.Context, email string) (bool, error)
}

func (g *StubGateway) HasPendingPayments(ctx context.Context, email string) (bool, error) {
	if g.HasPendingPaymentsFunc == nil {
		return false, errors.New("HasPendingPayments() not implemented by stub")
	}
	return g.HasPendingPaymentsFunc(ctx, email)
}
