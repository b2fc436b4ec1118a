package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/internal/service/eligibility"
	"github.com/m04kA/SMC-RangeBooking/pkg/logger"
	"github.com/m04kA/SMC-RangeBooking/pkg/types"
)

// Переменные окружения, переопределяющие файл
const (
	EnvHTTPPort        = "RANGE_HTTP_PORT"
	EnvLogLevel        = "RANGE_LOG_LEVEL"
	EnvJournalDSN      = "RANGE_JOURNAL_DSN"
	EnvJournalPassword = "RANGE_JOURNAL_PASSWORD"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig        `toml:"server"`
	Logs         LogsConfig          `toml:"logs"`
	Metrics      MetricsConfig       `toml:"metrics"`
	Booking      BookingConfig       `toml:"booking"`
	Eligibility  EligibilityConfig   `toml:"eligibility"`
	Journal      JournalConfig       `toml:"journal"`
	Demo         DemoConfig          `toml:"demo"`
	Competitions []CompetitionConfig `toml:"competitions"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig настройки досок слотов
type BookingConfig struct {
	LockTTLSeconds       int  `toml:"lock_ttl_seconds"`
	SweepIntervalSeconds int  `toml:"sweep_interval_seconds"`
	FitSlotsWithinWindow bool `toml:"fit_slots_within_window"`
}

func (b BookingConfig) LockTTL() time.Duration {
	return time.Duration(b.LockTTLSeconds) * time.Second
}

func (b BookingConfig) SweepInterval() time.Duration {
	return time.Duration(b.SweepIntervalSeconds) * time.Second
}

// EligibilityConfig стратегия ограничений по классам
type EligibilityConfig struct {
	Policy  string     `toml:"policy"`
	Presets [][]string `toml:"presets"`
}

// Rule строит правило допуска из конфигурации
func (e EligibilityConfig) Rule() (*eligibility.PresetRule, error) {
	var presets [][]domain.Class
	for _, p := range e.Presets {
		preset := make([]domain.Class, 0, len(p))
		for _, c := range p {
			preset = append(preset, domain.Class(c))
		}
		presets = append(presets, preset)
	}
	return eligibility.New(eligibility.Policy(e.Policy), presets)
}

// JournalConfig журнал броней. Для postgres DSN собирается из полей, если не задан явно.
type JournalConfig struct {
	Enabled  bool   `toml:"enabled"`
	Driver   string `toml:"driver"`
	DSN      string `toml:"dsn"`
	Path     string `toml:"path"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

// ConnectionString возвращает строку подключения для драйвера
func (j JournalConfig) ConnectionString() string {
	if j.DSN != "" {
		return j.DSN
	}
	if j.Driver == "sqlite" {
		return j.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		j.Host, j.Port, j.User, j.Password, j.DBName, j.SSLMode)
}

// DemoConfig заполнение досок демонстрационными бронями
type DemoConfig struct {
	Enabled       bool  `toml:"enabled"`
	Seed          int64 `toml:"seed"`
	BookedPercent int   `toml:"booked_percent"`
}

// CompetitionConfig соревнование из файла конфигурации
type CompetitionConfig struct {
	ID                  int64    `toml:"id"`
	Name                string   `toml:"name"`
	Location            string   `toml:"location"`
	StartDate           string   `toml:"start_date"`
	EndDate             string   `toml:"end_date"`
	StartTime           string   `toml:"start_time"`
	EndTime             string   `toml:"end_time"`
	TargetCount         int      `toml:"target_count"`
	SlotDurationMinutes int      `toml:"slot_duration_minutes"`
	TotalSlots          int      `toml:"total_slots"`
	Status              string   `toml:"status"`
	EligibleClasses     []string `toml:"eligible_classes"`
}

// ToDomain разбирает даты, время и статус
func (c CompetitionConfig) ToDomain() (domain.Competition, error) {
	start, err := time.Parse(domain.DateFormat, c.StartDate)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("competition %d: start_date: %w", c.ID, err)
	}
	end, err := time.Parse(domain.DateFormat, c.EndDate)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("competition %d: end_date: %w", c.ID, err)
	}
	startTime, err := types.NewTimeStringFromString(c.StartTime)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("competition %d: start_time: %w", c.ID, err)
	}
	endTime, err := types.NewTimeStringFromString(c.EndTime)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("competition %d: end_time: %w", c.ID, err)
	}
	status, err := domain.ParseCompetitionStatus(c.Status)
	if err != nil {
		return domain.Competition{}, fmt.Errorf("competition %d: %w", c.ID, err)
	}

	classes := make([]domain.Class, 0, len(c.EligibleClasses))
	for _, cl := range c.EligibleClasses {
		classes = append(classes, domain.Class(cl))
	}
	if err := domain.ValidateClasses(classes); err != nil {
		return domain.Competition{}, fmt.Errorf("competition %d: eligible_classes: %w", c.ID, err)
	}

	return domain.Competition{
		ID:                  c.ID,
		Name:                c.Name,
		Location:            c.Location,
		StartDate:           start,
		EndDate:             end,
		StartTime:           startTime,
		EndTime:             endTime,
		TargetCount:         c.TargetCount,
		SlotDurationMinutes: c.SlotDurationMinutes,
		TotalSlots:          c.TotalSlots,
		Status:              status,
		EligibleClasses:     classes,
	}, nil
}

// Load загружает .env (если есть), файл конфигурации и переопределения из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "range-booking"
	}

	setDefault(&c.Booking.LockTTLSeconds, int(domain.DefaultLockTTL/time.Second))
	setDefault(&c.Booking.SweepIntervalSeconds, int(domain.DefaultSweepInterval/time.Second))

	if c.Eligibility.Policy == "" {
		c.Eligibility.Policy = string(eligibility.PolicySparse)
	}

	if c.Journal.Driver == "" {
		c.Journal.Driver = "sqlite"
	}
	if c.Journal.Driver == "sqlite" && c.Journal.Path == "" {
		c.Journal.Path = "range_bookings.db"
	}
	setDefault(&c.Journal.Port, 5432)
	if c.Journal.SSLMode == "" {
		c.Journal.SSLMode = "disable"
	}

	setDefault(&c.Demo.BookedPercent, 30)
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvHTTPPort); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHTTPPort, err)
		}
		c.Server.HTTPPort = port
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logs.Level = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvJournalDSN); ok {
		c.Journal.DSN = v
	}
	if v, ok := os.LookupEnv(EnvJournalPassword); ok {
		c.Journal.Password = v
	}
	return nil
}

// Validate проверяет значения после применения значений по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}

	if _, err := logger.ParseLevel(c.Logs.Level); err != nil {
		return fmt.Errorf("logs.level: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}

	if c.Booking.LockTTLSeconds <= 0 {
		return fmt.Errorf("booking.lock_ttl_seconds must be positive")
	}
	if c.Booking.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("booking.sweep_interval_seconds must be positive")
	}

	if _, err := c.Eligibility.Rule(); err != nil {
		return fmt.Errorf("eligibility: %w", err)
	}

	if c.Journal.Enabled {
		switch c.Journal.Driver {
		case "postgres", "sqlite":
		default:
			return fmt.Errorf("journal.driver must be postgres or sqlite, got %q", c.Journal.Driver)
		}
		if c.Journal.ConnectionString() == "" {
			return fmt.Errorf("journal: connection is not configured")
		}
	}

	if c.Demo.BookedPercent < 0 || c.Demo.BookedPercent > 100 {
		return fmt.Errorf("demo.booked_percent must be in 0..100, got %d", c.Demo.BookedPercent)
	}

	seen := make(map[int64]struct{}, len(c.Competitions))
	for _, comp := range c.Competitions {
		if _, dup := seen[comp.ID]; dup {
			return fmt.Errorf("competitions: duplicate id %d", comp.ID)
		}
		seen[comp.ID] = struct{}{}
		if _, err := comp.ToDomain(); err != nil {
			return fmt.Errorf("competitions: %w", err)
		}
	}

	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
