// Package sqlite provides a SQLite-backed booking storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/facility-bookings/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const bookingColumns = `id, name, date, time, facility, status, created_at, updated_at`

// Store persists bookings in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite booking store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// CreateBooking inserts one booking; id and status come from the schema.
func (s *Store) CreateBooking(ctx context.Context, booking storage.NewBooking) (domain.Booking, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Booking{}, err
	}
	now := toMillis(s.clock())
	row := s.sqlDB.QueryRowContext(
		ctx,
		`INSERT INTO bookings (name, date, time, facility, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING `+bookingColumns,
		booking.Name,
		booking.Date.String(),
		booking.Time,
		booking.Facility,
		now,
		now,
	)
	created, err := scanBooking(row)
	if err != nil {
		if isConstraintViolation(err) {
			return domain.Booking{}, fmt.Errorf("create booking: constraint violation: %w", err)
		}
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return created, nil
}

// GetBooking returns one booking by id.
func (s *Store) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Booking{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, storage.ErrNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

// ListBookings returns every booking ordered by id descending.
func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBooking overwrites the patched fields of one booking.
func (s *Store) UpdateBooking(ctx context.Context, id int64, patch storage.BookingPatch) (domain.Booking, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Booking{}, err
	}
	if patch.IsEmpty() {
		return s.GetBooking(ctx, id)
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, patch.Date.String())
	}
	if patch.Time != nil {
		sets = append(sets, "time = ?")
		args = append(args, *patch.Time)
	}
	if patch.Facility != nil {
		sets = append(sets, "facility = ?")
		args = append(args, *patch.Facility)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, toMillis(s.clock()), id)

	row := s.sqlDB.QueryRowContext(
		ctx,
		`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING `+bookingColumns,
		args...,
	)
	updated, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, storage.ErrNotFound
		}
		return domain.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	return updated, nil
}

// DeleteBooking removes one booking and returns it.
func (s *Store) DeleteBooking(ctx context.Context, id int64) (domain.Booking, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Booking{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `DELETE FROM bookings WHERE id = ? RETURNING `+bookingColumns, id)
	deleted, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, storage.ErrNotFound
		}
		return domain.Booking{}, fmt.Errorf("delete booking: %w", err)
	}
	return deleted, nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (domain.Booking, error) {
	var (
		booking   domain.Booking
		date      string
		status    string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&booking.ID,
		&booking.Name,
		&date,
		&booking.Time,
		&booking.Facility,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Booking{}, err
	}
	parsed, err := domain.ParseDate(date)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("booking %d: %w", booking.ID, err)
	}
	booking.Date = parsed
	booking.Status = domain.Status(status)
	booking.CreatedAt = fromMillis(createdAt)
	booking.UpdatedAt = fromMillis(updatedAt)
	return booking, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT,
		sqlite3lib.SQLITE_CONSTRAINT_CHECK,
		sqlite3lib.SQLITE_CONSTRAINT_NOTNULL,
		sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY,
		sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

var _ storage.Store = (*Store)(nil)
