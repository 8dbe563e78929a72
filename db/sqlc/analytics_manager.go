package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

type AnalyticsManager struct {
	queries Querier
}

// A nil Querier turns every method into a no-op so the
// server can run without a database.
func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) Enabled() bool {
	return a.queries != nil
}

// RecordAttack counts an attack that changed the board and,
// if it was the sinking blow, the sunk ship as well.
func (a *AnalyticsManager) RecordAttack(ctx context.Context, serverIpNet pqtype.Inet, sunk bool) error {
	if !a.Enabled() {
		return nil
	}

	if err := a.queries.AnalyticsIncrementAttacksReceivedCount(ctx, serverIpNet); err != nil {
		return err
	}
	if sunk {
		return a.queries.AnalyticsIncrementShipsSunkCount(ctx, serverIpNet)
	}
	return nil
}

func (a *AnalyticsManager) GetAttacksReceivedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.AnalyticsGetAttacksReceivedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetShipsSunkCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.AnalyticsGetShipsSunkCount(ctx, serverIpNet)
}
