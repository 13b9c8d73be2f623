package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/travel-planner/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Pool      *sqlite.ConnectionPool
	Members   *sqlite.MemberRepository
	Places    *sqlite.PlaceRepository
	Schedules *sqlite.ScheduleRepository
	Attendees *sqlite.AttendeeRepository
	Routes    *sqlite.RouteRepository
}

// NewSQLiteHarness opens a migrated SQLite database under a per-test temp
// directory and registers cleanup with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "planner.db")

	pool, err := sqlite.NewConnectionPool("file:" + path)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}
	tb.Cleanup(func() { _ = pool.Close() })

	if err := pool.Migrate(context.Background()); err != nil {
		tb.Fatalf("failed to apply migrations: %v", err)
	}

	return &SQLiteHarness{
		Pool:      pool,
		Members:   sqlite.NewMemberRepository(pool),
		Places:    sqlite.NewPlaceRepository(pool),
		Schedules: sqlite.NewScheduleRepository(pool),
		Attendees: sqlite.NewAttendeeRepository(pool),
		Routes:    sqlite.NewRouteRepository(pool),
	}
}
