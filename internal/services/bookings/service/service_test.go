package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/facility-bookings/internal/platform/metrics"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/domain"
	apperrors "github.com/louisbranch/facility-bookings/internal/services/bookings/platform/errors"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/storage"
	bookingsqlite "github.com/louisbranch/facility-bookings/internal/services/bookings/storage/sqlite"
)

func TestNewRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Fatal("expected nil store error")
	}
}

func TestCreateAssignsIDAndDefaultStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	created, err := svc.Create(context.Background(), domain.Draft{
		Name:     "Alice",
		Date:     "2024-01-01",
		Time:     "10:00",
		Facility: "Room A",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("id = %d, want positive", created.ID)
	}
	if created.Status != domain.StatusApproved {
		t.Fatalf("status = %q, want %q", created.Status, domain.StatusApproved)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Alice" || got.Date.String() != "2024-01-01" || got.Time != "10:00" || got.Facility != "Room A" {
		t.Fatalf("get = %+v", got)
	}
}

func TestCreateIgnoresSuppliedStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	for _, status := range []string{"PENDING", "CANCELLED"} {
		created, err := svc.Create(context.Background(), domain.Draft{
			Name:     "Alice",
			Date:     "2024-01-01",
			Time:     "10:00",
			Facility: "Room A",
			Status:   status,
		})
		if err != nil {
			t.Fatalf("create with status %q: %v", status, err)
		}
		if created.Status != domain.StatusApproved {
			t.Fatalf("status = %q, want %q", created.Status, domain.StatusApproved)
		}
	}
}

func TestCreateRejectsInvalidDraftWithoutWriting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		draft   domain.Draft
		wantMsg string
	}{
		{
			name:    "blank name",
			draft:   domain.Draft{Name: "  ", Date: "2024-01-01", Time: "10:00", Facility: "Room A"},
			wantMsg: "Name are required fields.",
		},
		{
			name:    "bad date",
			draft:   domain.Draft{Name: "Alice", Date: "01/02/2024", Time: "10:00", Facility: "Room A"},
			wantMsg: "date",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := &fakeStore{}
			svc, err := New(store)
			if err != nil {
				t.Fatalf("new service: %v", err)
			}
			_, err = svc.Create(context.Background(), tc.draft)
			if !apperrors.Is(err, apperrors.KindInvalidInput) {
				t.Fatalf("kind = %q, want %q", apperrors.KindOf(err), apperrors.KindInvalidInput)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error = %q, want to contain %q", err.Error(), tc.wantMsg)
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatal("expected validation error to be reachable")
			}
			if store.creates != 0 {
				t.Fatalf("creates = %d, want 0", store.creates)
			}
		})
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Get(context.Background(), 404)
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("kind = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("expected storage.ErrNotFound to be reachable")
	}
}

func TestListReturnsNewestFirst(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	empty, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("empty list = %#v", empty)
	}

	first := seed(t, svc, "first")
	second := seed(t, svc, "second")
	listed, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != second.ID || listed[1].ID != first.ID {
		t.Fatalf("listed = %+v", listed)
	}
}

func TestUpdateMergesPartialPatch(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	created := seed(t, svc, "Alice")

	updated, err := svc.Update(context.Background(), created.ID, domain.StatusPatch(domain.StatusCancelled))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusCancelled {
		t.Fatalf("status = %q, want %q", updated.Status, domain.StatusCancelled)
	}
	if updated.Name != created.Name || updated.Facility != created.Facility || updated.Date != created.Date {
		t.Fatalf("unpatched fields changed: %+v", updated)
	}

	name := "  Bob  "
	renamed, err := svc.Update(context.Background(), created.ID, domain.Patch{Name: &name})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Bob" || renamed.Status != domain.StatusCancelled {
		t.Fatalf("renamed = %+v", renamed)
	}
}

func TestUpdateValidatesMergedDraft(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	created := seed(t, svc, "Alice")

	tests := []struct {
		name  string
		patch domain.Patch
	}{
		{name: "blank facility", patch: domain.Patch{Facility: strPtr("")}},
		{name: "unknown status", patch: domain.Patch{Status: strPtr("PENDING")}},
		{name: "bad date", patch: domain.Patch{Date: strPtr("tomorrow")}},
	}
	for _, tc := range tests {
		_, err := svc.Update(context.Background(), created.ID, tc.patch)
		if !apperrors.Is(err, apperrors.KindInvalidInput) {
			t.Fatalf("%s: kind = %q, want %q", tc.name, apperrors.KindOf(err), apperrors.KindInvalidInput)
		}
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Facility != created.Facility || got.Status != created.Status || got.Date != created.Date {
		t.Fatalf("rejected updates mutated booking: %+v", got)
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := &fakeStore{getErr: storage.ErrNotFound}
	svc, err := New(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	_, err = svc.Update(context.Background(), 9, domain.StatusPatch(domain.StatusCancelled))
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("kind = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
	}
	if store.updates != 0 {
		t.Fatalf("updates = %d, want 0", store.updates)
	}
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	created := seed(t, svc, "Alice")
	deleted, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("deleted id = %d, want %d", deleted.ID, created.ID)
	}
	if _, err := svc.Get(context.Background(), created.ID); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("get after delete kind = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
	}
	if _, err := svc.Delete(context.Background(), created.ID); !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("second delete kind = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
	}
}

func TestStoreFailuresAreUnknownKind(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk I/O error")
	svc, err := New(&fakeStore{listErr: boom, createErr: boom})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.List(context.Background()); !apperrors.Is(err, apperrors.KindUnknown) || !errors.Is(err, boom) {
		t.Fatalf("list err = %v", err)
	}
	_, err = svc.Create(context.Background(), domain.Draft{Name: "A", Date: "2024-01-01", Time: "1", Facility: "F"})
	if !apperrors.Is(err, apperrors.KindUnknown) {
		t.Fatalf("create kind = %q, want %q", apperrors.KindOf(err), apperrors.KindUnknown)
	}
	if apperrors.PublicMessage(err) == boom.Error() {
		t.Fatal("public message leaked store error")
	}
}

func TestCancelledContextIsUnavailable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.List(ctx); !apperrors.Is(err, apperrors.KindUnavailable) {
		t.Fatalf("kind = %q, want %q", apperrors.KindOf(err), apperrors.KindUnavailable)
	}
}

func TestOperationsAreCounted(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	svc, err := New(&fakeStore{getErr: storage.ErrNotFound}, WithMetrics(m))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	_, _ = svc.List(context.Background())
	_, _ = svc.Get(context.Background(), 1)

	body := scrapeMetrics(t, m)
	for _, line := range []string{
		`bookings_store_operations_total{operation="list",outcome="ok"} 1`,
		`bookings_store_operations_total{operation="get",outcome="error"} 1`,
	} {
		if !strings.Contains(body, line) {
			t.Fatalf("metrics output missing %q", line)
		}
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := bookingsqlite.Open(filepath.Join(t.TempDir(), "bookings.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	svc, err := New(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seed(t *testing.T, svc *Service, name string) domain.Booking {
	t.Helper()
	created, err := svc.Create(context.Background(), domain.Draft{
		Name:     name,
		Date:     "2024-01-01",
		Time:     "10:00",
		Facility: "Room A",
	})
	if err != nil {
		t.Fatalf("seed %q: %v", name, err)
	}
	return created
}

func strPtr(value string) *string {
	return &value
}

type fakeStore struct {
	createErr error
	getErr    error
	listErr   error
	creates   int
	updates   int
}

func (s *fakeStore) CreateBooking(_ context.Context, booking storage.NewBooking) (domain.Booking, error) {
	s.creates++
	if s.createErr != nil {
		return domain.Booking{}, s.createErr
	}
	return domain.Booking{ID: 1, Name: booking.Name, Date: booking.Date, Time: booking.Time, Facility: booking.Facility, Status: domain.DefaultStatus}, nil
}

func (s *fakeStore) GetBooking(context.Context, int64) (domain.Booking, error) {
	return domain.Booking{}, s.getErr
}

func (s *fakeStore) ListBookings(context.Context) ([]domain.Booking, error) {
	return nil, s.listErr
}

func (s *fakeStore) UpdateBooking(context.Context, int64, storage.BookingPatch) (domain.Booking, error) {
	s.updates++
	return domain.Booking{}, nil
}

func (s *fakeStore) DeleteBooking(context.Context, int64) (domain.Booking, error) {
	return domain.Booking{}, storage.ErrNotFound
}
