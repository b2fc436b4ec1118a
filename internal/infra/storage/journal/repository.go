package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RangeBooking/internal/domain"
	"github.com/m04kA/SMC-RangeBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RangeBooking/pkg/psqlbuilder"
)

const table = "range_bookings"

var columns = []string{
	"id",
	"competition_id",
	"target_id",
	"slot_id",
	"slot_date",
	"slot_time",
	"booker_name",
	"booker_class",
	"actor_id",
	"booked_at",
}

// Repository журнал броней. Только добавление и чтение.
type Repository struct {
	db      TxBeginner
	builder psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db TxBeginner, driver string) *Repository {
	return &Repository{db: db, builder: psqlbuilder.ForDriver(driver)}
}

// Migrate создает таблицу журнала, если ее нет. Схема общая для Postgres и SQLite.
func (r *Repository) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS range_bookings (
			id             TEXT PRIMARY KEY,
			competition_id BIGINT NOT NULL,
			target_id      TEXT NOT NULL,
			slot_id        TEXT NOT NULL,
			slot_date      TEXT NOT NULL,
			slot_time      TEXT NOT NULL,
			booker_name    TEXT NOT NULL,
			booker_class   TEXT NOT NULL,
			actor_id       TEXT NOT NULL,
			booked_at      TEXT NOT NULL,
			UNIQUE (competition_id, slot_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_range_bookings_competition ON range_bookings (competition_id)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", ErrMigrate, err)
		}
	}
	return nil
}

// InsertMany добавляет записи одной транзакцией.
// Повторная запись того же слота игнорируется, журнал можно воспроизводить.
func (r *Repository) InsertMany(ctx context.Context, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: InsertMany - begin: %v", ErrTransaction, err)
	}
	txCtx := dbmetrics.WithTx(ctx, tx)

	for i := range bookings {
		if err := r.insert(txCtx, &bookings[i]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: InsertMany - commit: %v", ErrTransaction, err)
	}
	return nil
}

func (r *Repository) insert(ctx context.Context, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Insert(table).
		Columns(columns...).
		Values(
			b.ID,
			b.CompetitionID,
			b.TargetID,
			b.SlotID,
			b.Date.Format(domain.DateFormat),
			b.Time.String(),
			b.BookerName,
			string(b.BookerClass),
			b.ActorID,
			b.BookedAt.UTC().Format(time.RFC3339Nano),
		).
		Suffix("ON CONFLICT (competition_id, slot_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// ListByCompetition возвращает записи соревнования в порядке бронирования
func (r *Repository) ListByCompetition(ctx context.Context, competitionID int64) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"competition_id": competitionID}).
		OrderBy("booked_at", "slot_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompetition - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompetition - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var (
			b                  domain.Booking
			slotDate, bookedAt string
			bookerClass        string
		)
		if err := rows.Scan(
			&b.ID,
			&b.CompetitionID,
			&b.TargetID,
			&b.SlotID,
			&slotDate,
			&b.Time,
			&b.BookerName,
			&bookerClass,
			&b.ActorID,
			&bookedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByCompetition - scan: %v", ErrScanRow, err)
		}

		if b.Date, err = time.Parse(domain.DateFormat, slotDate); err != nil {
			return nil, fmt.Errorf("%w: ListByCompetition - slot_date %q: %v", ErrScanRow, slotDate, err)
		}
		if b.BookedAt, err = time.Parse(time.RFC3339Nano, bookedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByCompetition - booked_at %q: %v", ErrScanRow, bookedAt, err)
		}
		b.BookerClass = domain.Class(bookerClass)

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCompetition - rows: %v", ErrScanRow, err)
	}

	return bookings, nil
}
