package sqlc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
	"github.com/stretchr/testify/require"
)

var testServerIp = pqtype.Inet{
	IPNet: net.IPNet{IP: net.IPv4(10, 0, 0, 7), Mask: net.CIDRMask(24, 32)},
	Valid: true,
}

func newTestAnalytics(t *testing.T) (*AnalyticsManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDbManager(New(db)).Analytics, mock
}

func TestAnalyticsIncrements(t *testing.T) {
	analytics, mock := newTestAnalytics(t)

	tests := []struct {
		name  string
		query string
		run   func(ctx context.Context) error
	}{
		{
			name:  "games created",
			query: `INSERT INTO game_server_analytics \(server_ip, games_created\)`,
			run: func(ctx context.Context) error {
				return analytics.IncrementGamesCreatedCount(ctx, testServerIp)
			},
		},
		{
			name:  "restarts called",
			query: `INSERT INTO game_server_analytics \(server_ip, restarts_called\)`,
			run: func(ctx context.Context) error {
				return analytics.IncrementRestartsCalledCount(ctx, testServerIp)
			},
		},
		{
			name:  "player wins",
			query: `INSERT INTO game_server_analytics \(server_ip, player_wins\)`,
			run: func(ctx context.Context) error {
				return analytics.IncrementWinsCount(ctx, testServerIp, true)
			},
		},
		{
			name:  "computer wins",
			query: `INSERT INTO game_server_analytics \(server_ip, computer_wins\)`,
			run: func(ctx context.Context) error {
				return analytics.IncrementWinsCount(ctx, testServerIp, false)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mock.ExpectExec(test.query).
				WithArgs(testServerIp).
				WillReturnResult(sqlmock.NewResult(0, 1))

			ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
			defer cancel()
			if err := test.run(ctx); err != nil {
				t.Fatalf("failed to increment: %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations were not met: %v", err)
			}
		})
	}
}

func TestAnalyticsReads(t *testing.T) {
	analytics, mock := newTestAnalytics(t)
	ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
	defer cancel()

	mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(testServerIp).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(3))

	gamesCreated, err := analytics.GetGamesCreatedCount(ctx, testServerIp)
	require.NoError(t, err)
	require.EqualValues(t, 3, gamesCreated)

	updatedAt := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT server_ip, games_created, restarts_called, player_wins, computer_wins, updated_at`).
		WithArgs(testServerIp).
		WillReturnRows(sqlmock.NewRows([]string{"server_ip", "games_created", "restarts_called", "player_wins", "computer_wins", "updated_at"}).
			AddRow("10.0.0.7", 3, 1, 2, 1, updatedAt))

	row, err := analytics.GetServerAnalytics(ctx, testServerIp)
	require.NoError(t, err)
	require.EqualValues(t, 1, row.RestartsCalled)
	require.EqualValues(t, 2, row.PlayerWins)
	require.EqualValues(t, 1, row.ComputerWins)
	require.Equal(t, "10.0.0.7", row.ServerIp.IPNet.IP.String())
	require.Equal(t, updatedAt, row.UpdatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsQueryError(t *testing.T) {
	analytics, mock := newTestAnalytics(t)
	dbErr := errors.New("connection refused")

	mock.ExpectExec(`INSERT INTO game_server_analytics`).WillReturnError(dbErr)

	err := analytics.IncrementGamesCreatedCount(context.Background(), testServerIp)
	require.ErrorIs(t, err, dbErr)
}

func TestDisabledAnalytics(t *testing.T) {
	var analytics *AnalyticsManager
	require.False(t, analytics.Enabled())
	require.NoError(t, analytics.IncrementGamesCreatedCount(context.Background(), testServerIp))

	analytics = NewDbManager(nil).Analytics
	require.False(t, analytics.Enabled())
	require.NoError(t, analytics.IncrementWinsCount(context.Background(), testServerIp, true))

	count, err := analytics.GetGamesCreatedCount(context.Background(), testServerIp)
	require.NoError(t, err)
	require.Zero(t, count)
}
