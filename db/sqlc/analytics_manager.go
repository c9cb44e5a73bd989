package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager records per-server game counters. A nil manager or a
// manager without queries is a no-op, so the game server keeps running
// when no database is configured.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementRestartsCalledCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementRestartsCalledCount(ctx, serverIpNet)
}

// IncrementWinsCount bumps the player or the computer counter.
func (a *AnalyticsManager) IncrementWinsCount(ctx context.Context, serverIpNet pqtype.Inet, playerWon bool) error {
	if !a.Enabled() {
		return nil
	}
	if playerWon {
		return a.queries.IncrementPlayerWinsCount(ctx, serverIpNet)
	}
	return a.queries.IncrementComputerWinsCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.GetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetServerAnalytics(ctx context.Context, serverIpNet pqtype.Inet) (GameServerAnalytic, error) {
	if !a.Enabled() {
		return GameServerAnalytic{ServerIp: serverIpNet}, nil
	}
	return a.queries.GetServerAnalytics(ctx, serverIpNet)
}
