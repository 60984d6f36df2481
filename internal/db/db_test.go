package db

import (
	"os"
	"testing"
	"time"

	"galmaetgil/internal/domain"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		database.conn.Exec("DELETE FROM user_badges")
		database.conn.Exec("DELETE FROM completions")
		database.conn.Exec("DELETE FROM users")
		database.Close()
	})
	return database
}

func testUser(id domain.UserID) domain.User {
	return domain.User{
		ID:       id,
		Email:    "tester@example.com",
		Nickname: "테스터",
		Region:   "수영구",
		JoinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestConnect(t *testing.T) {
	database := getTestDB(t)
	if err := database.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	database := getTestDB(t)

	// Re-running must be harmless
	if err := database.Migrate(); err != nil {
		t.Fatalf("second Migrate() error: %v", err)
	}

	tables := []string{"users", "completions", "user_badges"}
	for _, table := range tables {
		var exists bool
		err := database.conn.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)
		`, table).Scan(&exists)
		if err != nil {
			t.Errorf("checking table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestUpsertUser(t *testing.T) {
	database := getTestDB(t)

	u := testUser(1001)
	if err := database.UpsertUser(u); err != nil {
		t.Fatalf("UpsertUser() error: %v", err)
	}

	u.Nickname = "새 닉네임"
	if err := database.UpsertUser(u); err != nil {
		t.Fatalf("UpsertUser() update error: %v", err)
	}

	var nickname string
	var rows int
	err := database.conn.QueryRow(`
		SELECT nickname, (SELECT count(*) FROM users WHERE id = $1) FROM users WHERE id = $1
	`, 1001).Scan(&nickname, &rows)
	if err != nil {
		t.Fatalf("reading user: %v", err)
	}
	if nickname != "새 닉네임" {
		t.Errorf("nickname = %q, want %q", nickname, "새 닉네임")
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
}

func TestBatchRecordCompletions(t *testing.T) {
	database := getTestDB(t)
	database.UpsertUser(testUser(1003))

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []domain.CompletionRecord{
		{UserID: 1003, CourseID: 1, CompletionTimeSeconds: 9930, Date: base, CumulativeCount: 1},
		{UserID: 1003, CourseID: 1, Date: base.Add(24 * time.Hour), CumulativeCount: 2},
		{UserID: 1003, CourseID: 2, CompletionTimeSeconds: 12015, Date: base.Add(48 * time.Hour), CumulativeCount: 1},
	}

	if err := database.BatchRecordCompletions(records); err != nil {
		t.Fatalf("BatchRecordCompletions() error: %v", err)
	}

	var count, maxCumulative, firstSeconds int
	err := database.conn.QueryRow(`
		SELECT count(*), max(cumulative_count),
			(SELECT completion_seconds FROM completions WHERE course_id = 1 ORDER BY completed_at LIMIT 1)
		FROM completions WHERE course_id = 1
	`).Scan(&count, &maxCumulative, &firstSeconds)
	if err != nil {
		t.Fatalf("reading completions: %v", err)
	}
	if count != 2 {
		t.Fatalf("course 1 records = %d, want 2", count)
	}
	if maxCumulative != 2 {
		t.Errorf("max cumulative = %d, want 2", maxCumulative)
	}
	if firstSeconds != 9930 {
		t.Errorf("seconds = %d, want 9930", firstSeconds)
	}
}

func TestBatchRecordCompletions_RollsBackOnError(t *testing.T) {
	database := getTestDB(t)
	database.UpsertUser(testUser(1005))

	records := []domain.CompletionRecord{
		{UserID: 1005, CourseID: 4, Date: time.Now(), CumulativeCount: 1},
		{UserID: 424242, CourseID: 4, Date: time.Now(), CumulativeCount: 1},
	}
	if err := database.BatchRecordCompletions(records); err == nil {
		t.Fatal("BatchRecordCompletions() should fail for an unknown user")
	}

	var count int
	if err := database.conn.QueryRow(`SELECT count(*) FROM completions WHERE course_id = 4`).Scan(&count); err != nil {
		t.Fatalf("reading completions: %v", err)
	}
	if count != 0 {
		t.Errorf("course 4 records = %d, want 0 after rollback", count)
	}
}

func TestAwardBadge(t *testing.T) {
	database := getTestDB(t)
	database.UpsertUser(testUser(1004))

	if err := database.AwardBadge(1004, 1); err != nil {
		t.Fatalf("AwardBadge() error: %v", err)
	}
	// Duplicate award is a no-op
	if err := database.AwardBadge(1004, 1); err != nil {
		t.Fatalf("AwardBadge() duplicate error: %v", err)
	}
	if err := database.AwardBadge(1004, 3); err != nil {
		t.Fatalf("AwardBadge() error: %v", err)
	}

	var count int
	if err := database.conn.QueryRow(`SELECT count(*) FROM user_badges WHERE user_id = $1`, 1004).Scan(&count); err != nil {
		t.Fatalf("reading badges: %v", err)
	}
	if count != 2 {
		t.Fatalf("badges = %d, want 2", count)
	}
}
