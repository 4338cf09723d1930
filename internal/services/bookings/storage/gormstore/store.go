// Package gormstore provides a GORM-backed booking store, used with
// PostgreSQL in deployments that outgrow the embedded SQLite file.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// bookings
type bookingRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:text;not null"`
	Date      time.Time `gorm:"type:date;not null"`
	Time      string    `gorm:"type:varchar(32);not null"`
	Facility  string    `gorm:"type:text;not null;index"`
	Status    string    `gorm:"type:varchar(16);not null;default:'APPROVED';check:status IN ('APPROVED', 'CANCELLED')"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (bookingRecord) TableName() string { return "bookings" }

func (r bookingRecord) toDomain() domain.Booking {
	return domain.Booking{
		ID:        r.ID,
		Name:      r.Name,
		Date:      domain.DateOf(r.Date.UTC()),
		Time:      r.Time,
		Facility:  r.Facility,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store persists bookings through GORM.
type Store struct {
	db *gorm.DB
}

// OpenPostgres connects to PostgreSQL with a libpq-style or URL DSN.
func OpenPostgres(dsn string, opts Options) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	return Open(postgres.Open(dsn), opts)
}

// Open connects through dialector and migrates the bookings table.
func Open(dialector gorm.Dialector, opts Options) (*Store, error) {
	if dialector == nil {
		return nil, fmt.Errorf("gorm dialector is required")
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(&bookingRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto migrate bookings: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateBooking inserts one booking and reloads it so schema defaults are visible.
func (s *Store) CreateBooking(ctx context.Context, booking storage.NewBooking) (domain.Booking, error) {
	if s == nil || s.db == nil {
		return domain.Booking{}, fmt.Errorf("storage is not configured")
	}
	rec := bookingRecord{
		Name:     booking.Name,
		Date:     booking.Date.Time(),
		Time:     booking.Time,
		Facility: booking.Facility,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	return s.GetBooking(ctx, rec.ID)
}

// GetBooking returns one booking by id.
func (s *Store) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	if s == nil || s.db == nil {
		return domain.Booking{}, fmt.Errorf("storage is not configured")
	}
	var rec bookingRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Booking{}, storage.ErrNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return rec.toDomain(), nil
}

// ListBookings returns every booking ordered by id descending.
func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var recs []bookingRecord
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings := make([]domain.Booking, 0, len(recs))
	for _, rec := range recs {
		bookings = append(bookings, rec.toDomain())
	}
	return bookings, nil
}

// UpdateBooking overwrites the patched fields of one booking.
func (s *Store) UpdateBooking(ctx context.Context, id int64, patch storage.BookingPatch) (domain.Booking, error) {
	if s == nil || s.db == nil {
		return domain.Booking{}, fmt.Errorf("storage is not configured")
	}
	if patch.IsEmpty() {
		return s.GetBooking(ctx, id)
	}

	update := map[string]any{}
	if patch.Name != nil {
		update["name"] = *patch.Name
	}
	if patch.Date != nil {
		update["date"] = patch.Date.Time()
	}
	if patch.Time != nil {
		update["time"] = *patch.Time
	}
	if patch.Facility != nil {
		update["facility"] = *patch.Facility
	}
	if patch.Status != nil {
		update["status"] = string(*patch.Status)
	}
	update["updated_at"] = s.db.NowFunc()

	res := s.db.WithContext(ctx).
		Model(&bookingRecord{}).
		Where("id = ?", id).
		Updates(update)
	if res.Error != nil {
		return domain.Booking{}, fmt.Errorf("update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Booking{}, storage.ErrNotFound
	}
	return s.GetBooking(ctx, id)
}

// DeleteBooking removes one booking and returns it.
func (s *Store) DeleteBooking(ctx context.Context, id int64) (domain.Booking, error) {
	if s == nil || s.db == nil {
		return domain.Booking{}, fmt.Errorf("storage is not configured")
	}
	var rec bookingRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&bookingRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Booking{}, storage.ErrNotFound
		}
		return domain.Booking{}, fmt.Errorf("delete booking: %w", err)
	}
	return rec.toDomain(), nil
}

var _ storage.Store = (*Store)(nil)
