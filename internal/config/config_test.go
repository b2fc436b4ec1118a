package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sample = `
[server]
http_port = 8085

[logs]
level = "debug"

[booking]
lock_ttl_seconds = 120
fit_slots_within_window = true

[eligibility]
policy = "rotating"
presets = [["JEG"], ["HK416", "KIK"]]

[journal]
enabled = true
driver = "postgres"
host = "localhost"
user = "range"
dbname = "range"

[[competitions]]
id = 5
name = "Lørdagsskuddet Toten"
location = "Toten"
start_date = "2025-10-11"
end_date = "2025-10-11"
start_time = "09:00"
end_time = "12:00"
target_count = 6
slot_duration_minutes = 60
eligible_classes = ["R", "HK416", "JEG"]
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 2*time.Minute, cfg.Booking.LockTTL())
	assert.Equal(t, 30*time.Second, cfg.Booking.SweepInterval())
	assert.True(t, cfg.Booking.FitSlotsWithinWindow)
	assert.Equal(t, 30, cfg.Demo.BookedPercent)

	rule, err := cfg.Eligibility.Rule()
	require.NoError(t, err)
	assert.Equal(t, eligibility.PolicyRotating, rule.Policy())

	assert.Equal(t, "host=localhost port=5432 user=range password= dbname=range sslmode=disable",
		cfg.Journal.ConnectionString())

	require.Len(t, cfg.Competitions, 1)
	comp, err := cfg.Competitions[0].ToDomain()
	require.NoError(t, err)
	assert.Equal(t, int64(5), comp.ID)
	assert.Equal(t, time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC), comp.StartDate)
	assert.Equal(t, types.TimeString("12:00"), comp.EndTime)
	assert.Equal(t, domain.CompetitionOpen, comp.Status)
	assert.Equal(t, []domain.Class{domain.ClassR, domain.ClassHK416, domain.ClassJEG}, comp.EligibleClasses)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvHTTPPort, "9090")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvJournalPassword, "secret")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "warn", cfg.Logs.Level)
	assert.Contains(t, cfg.Journal.ConnectionString(), "password=secret")

	t.Setenv(EnvJournalDSN, "postgres://range@db/range")
	cfg, err = Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "postgres://range@db/range", cfg.Journal.ConnectionString())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, domain.DefaultLockTTL, cfg.Booking.LockTTL())
	assert.Equal(t, string(eligibility.PolicySparse), cfg.Eligibility.Policy)
	assert.Equal(t, "sqlite", cfg.Journal.Driver)
	assert.Equal(t, "range_bookings.db", cfg.Journal.ConnectionString())
	assert.Empty(t, cfg.Competitions)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "port", content: "[server]\nhttp_port = 70000\n"},
		{name: "log level", content: "[logs]\nlevel = \"loud\"\n"},
		{name: "negative ttl", content: "[booking]\nlock_ttl_seconds = -1\n"},
		{name: "policy", content: "[eligibility]\npolicy = \"random\"\n"},
		{name: "preset class", content: "[eligibility]\npresets = [[\"XYZ\"]]\n"},
		{name: "driver", content: "[journal]\nenabled = true\ndriver = \"mysql\"\n"},
		{name: "demo percent", content: "[demo]\nbooked_percent = 150\n"},
		{name: "competition date", content: "[[competitions]]\nid = 1\nstart_date = \"11.10.2025\"\n"},
		{name: "competition class", content: "[[competitions]]\nid = 1\nstart_date = \"2025-10-11\"\nend_date = \"2025-10-11\"\nstart_time = \"09:00\"\nend_time = \"12:00\"\neligible_classes = [\"X\"]\n"},
		{name: "duplicate competition", content: "[[competitions]]\nid = 1\nstart_date = \"2025-10-11\"\nend_date = \"2025-10-11\"\nstart_time = \"09:00\"\nend_time = \"12:00\"\n[[competitions]]\nid = 1\nstart_date = \"2025-10-11\"\nend_date = \"2025-10-11\"\nstart_time = \"09:00\"\nend_time = \"12:00\"\n"},
		{name: "malformed toml", content: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
