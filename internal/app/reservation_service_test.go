package app

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Subby575/irctc/internal/clock"
	"github.com/Subby575/irctc/internal/domain"
)

func TestReservationService_Reserve(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	makeSvc := func(trains []domain.Train, bookings []domain.Booking) (*ReservationService, *fakeReservationRepo) {
		repo := newFakeReservationRepo(trains, bookings)
		svc := NewReservationService(repo, clock.NewFixed(now))
		return svc, repo
	}

	t.Run("allocates lowest free seat numbers first", func(t *testing.T) {
		svc, repo := makeSvc(
			[]domain.Train{{ID: "train-1", SeatCapacity: 10}},
			nil,
		)

		first, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "train-1", UserID: "user-1", Seats: 3})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		assertSeats(t, first.SeatNumbers, []int{1, 2, 3})
		if first.NoOfSeats != 3 {
			t.Fatalf("expected 3 seats, got %d", first.NoOfSeats)
		}
		if first.ID == "" {
			t.Fatalf("expected booking ID to be set")
		}
		if !first.CreatedAt.Equal(now) {
			t.Fatalf("expected created_at %v, got %v", now, first.CreatedAt)
		}

		second, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "train-1", UserID: "user-2", Seats: 2})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		assertSeats(t, second.SeatNumbers, []int{4, 5})

		if len(repo.bookings) != 2 {
			t.Fatalf("expected 2 bookings in repo, got %d", len(repo.bookings))
		}
	})

	t.Run("fills gaps left by earlier allocations", func(t *testing.T) {
		svc, _ := makeSvc(
			[]domain.Train{{ID: "train-1", SeatCapacity: 10}},
			[]domain.Booking{{ID: "b1", TrainID: "train-1", UserID: "user-1", NoOfSeats: 2, SeatNumbers: []int{2, 4}}},
		)

		booking, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "train-1", UserID: "user-2", Seats: 3})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		assertSeats(t, booking.SeatNumbers, []int{1, 3, 5})
	})

	t.Run("whole train in one request", func(t *testing.T) {
		svc, _ := makeSvc(
			[]domain.Train{{ID: "train-1", SeatCapacity: 5}},
			nil,
		)

		booking, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "train-1", UserID: "user-1", Seats: 5})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		assertSeats(t, booking.SeatNumbers, []int{1, 2, 3, 4, 5})
	})

	t.Run("full train rejects any request", func(t *testing.T) {
		svc, repo := makeSvc(
			[]domain.Train{{ID: "train-1", SeatCapacity: 5}},
			[]domain.Booking{{ID: "b1", TrainID: "train-1", UserID: "user-1", NoOfSeats: 5, SeatNumbers: []int{1, 2, 3, 4, 5}}},
		)

		_, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "train-1", UserID: "user-2", Seats: 1})
		if err != domain.ErrInsufficientSeats {
			t.Fatalf("expected ErrInsufficientSeats, got %v", err)
		}
		if len(repo.bookings) != 1 {
			t.Fatalf("expected bookings unchanged on failure, got %d", len(repo.bookings))
		}
	})

	t.Run("partial availability rejects oversized request", func(t *testing.T) {
		svc, repo := makeSvc(
			[]domain.Train{{ID: "train-1", SeatCapacity: 10}},
			[]domain.Booking{{ID: "b1", TrainID: "train-1", UserID: "user-1", NoOfSeats: 8, SeatNumbers: []int{1, 2, 3, 4, 5, 6, 7, 8}}},
		)

		_, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "train-1", UserID: "user-2", Seats: 3})
		if err != domain.ErrInsufficientSeats {
			t.Fatalf("expected ErrInsufficientSeats, got %v", err)
		}
		if len(repo.bookings) != 1 {
			t.Fatalf("expected bookings unchanged, got %d", len(repo.bookings))
		}
	})

	t.Run("non-positive seat count touches no storage", func(t *testing.T) {
		for _, seats := range []int{0, -3} {
			svc, repo := makeSvc([]domain.Train{{ID: "train-1", SeatCapacity: 10}}, nil)

			_, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "train-1", UserID: "user-1", Seats: seats})
			if err != domain.ErrInvalidSeatCount {
				t.Fatalf("seats=%d: expected ErrInvalidSeatCount, got %v", seats, err)
			}
			if repo.accesses() != 0 {
				t.Fatalf("seats=%d: expected no repository access, got %d", seats, repo.accesses())
			}
		}
	})

	t.Run("unknown train", func(t *testing.T) {
		svc, _ := makeSvc(nil, nil)

		_, err := svc.Reserve(context.Background(), ReserveInput{TrainID: "missing", UserID: "user-1", Seats: 1})
		if err != domain.ErrTrainNotFound {
			t.Fatalf("expected ErrTrainNotFound, got %v", err)
		}
	})
}

func TestReservationService_ConcurrentReserves(t *testing.T) {
	t.Parallel()

	const capacity = 7
	const callers = 25

	svc, repo := newStressService(t, capacity)

	errs := make([]error, callers)
	bookings := make([]domain.Booking, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			bookings[i], errs[i] = svc.Reserve(context.Background(), ReserveInput{
				TrainID: "train-1",
				UserID:  "user-1",
				Seats:   1,
			})
		}()
	}
	wg.Wait()

	var got []int
	succeeded := 0
	for i := range errs {
		switch errs[i] {
		case nil:
			succeeded++
			got = append(got, bookings[i].SeatNumbers...)
		case domain.ErrInsufficientSeats:
		default:
			t.Fatalf("unexpected error: %v", errs[i])
		}
	}

	if succeeded != capacity {
		t.Fatalf("expected %d successful reservations, got %d", capacity, succeeded)
	}
	want := make([]int, 0, capacity)
	for n := 1; n <= capacity; n++ {
		want = append(want, n)
	}
	assertSeats(t, got, want)

	if len(repo.bookings) != capacity {
		t.Fatalf("expected %d stored bookings, got %d", capacity, len(repo.bookings))
	}
}

func TestReservationService_TrainsAreIndependent(t *testing.T) {
	t.Parallel()

	const capacity = 5
	repo := newFakeReservationRepo([]domain.Train{
		{ID: "train-a", SeatCapacity: capacity},
		{ID: "train-b", SeatCapacity: capacity},
	}, nil)
	svc := NewReservationService(repo, clock.NewSystem())

	trains := []string{"train-a", "train-b"}
	results := make([][]int, len(trains))

	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < 2*capacity+4; i++ {
		trainID := trains[i%2]
		idx := i % 2
		wg.Add(1)
		go func() {
			defer wg.Done()
			booking, err := svc.Reserve(context.Background(), ReserveInput{TrainID: trainID, UserID: "user-1", Seats: 1})
			if err != nil {
				if err != domain.ErrInsufficientSeats {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			mu.Lock()
			results[idx] = append(results[idx], booking.SeatNumbers...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	for i, trainID := range trains {
		want := []int{1, 2, 3, 4, 5}
		if len(results[i]) != capacity {
			t.Fatalf("train %s: expected %d seats booked, got %d", trainID, capacity, len(results[i]))
		}
		assertSeats(t, results[i], want)
	}
}

func TestReservationService_Availability(t *testing.T) {
	t.Parallel()

	repo := newFakeReservationRepo(
		[]domain.Train{{ID: "train-1", SeatCapacity: 10}},
		[]domain.Booking{{ID: "b1", TrainID: "train-1", UserID: "user-1", NoOfSeats: 4, SeatNumbers: []int{1, 2, 3, 4}}},
	)
	svc := NewReservationService(repo, clock.NewSystem())

	available, err := svc.Availability(context.Background(), "train-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if available != 6 {
		t.Fatalf("expected 6 available seats, got %d", available)
	}

	if _, err := svc.Availability(context.Background(), "missing"); err != domain.ErrTrainNotFound {
		t.Fatalf("expected ErrTrainNotFound, got %v", err)
	}
}

func newStressService(t *testing.T, capacity int) (*ReservationService, *fakeReservationRepo) {
	t.Helper()
	repo := newFakeReservationRepo([]domain.Train{{ID: "train-1", SeatCapacity: capacity}}, nil)
	return NewReservationService(repo, clock.NewSystem()), repo
}

func assertSeats(t *testing.T, got, want []int) {
	t.Helper()
	gotCopy := append([]int{}, got...)
	sort.Ints(gotCopy)
	if len(gotCopy) != len(want) {
		t.Fatalf("expected seats %v, got %v", want, got)
	}
	for i := range want {
		if gotCopy[i] != want[i] {
			t.Fatalf("expected seats %v, got %v", want, got)
		}
	}
}

type fakeReservationRepo struct {
	mu       sync.Mutex
	trains   map[string]domain.Train
	bookings []domain.Booking
	reads    int
}

func newFakeReservationRepo(trains []domain.Train, bookings []domain.Booking) *fakeReservationRepo {
	m := make(map[string]domain.Train, len(trains))
	for _, train := range trains {
		m[train.ID] = train
	}
	return &fakeReservationRepo{
		trains:   m,
		bookings: append([]domain.Booking{}, bookings...),
	}
}

func (f *fakeReservationRepo) accesses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeReservationRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeReservationRepo) GetTrain(_ context.Context, trainID string) (domain.Train, error) {
	return f.getTrain(trainID)
}

func (f *fakeReservationRepo) GetTrainForUpdate(_ context.Context, trainID string) (domain.Train, error) {
	return f.getTrain(trainID)
}

func (f *fakeReservationRepo) getTrain(trainID string) (domain.Train, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	train, ok := f.trains[trainID]
	if !ok {
		return domain.Train{}, domain.ErrTrainNotFound
	}
	return train, nil
}

func (f *fakeReservationRepo) SumBookedSeats(_ context.Context, trainID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	total := 0
	for _, b := range f.bookings {
		if b.TrainID == trainID {
			total += b.NoOfSeats
		}
	}
	return total, nil
}

func (f *fakeReservationRepo) ListSeatNumbers(_ context.Context, trainID string) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	var taken []int
	for _, b := range f.bookings {
		if b.TrainID == trainID {
			taken = append(taken, b.SeatNumbers...)
		}
	}
	return taken, nil
}

func (f *fakeReservationRepo) CreateBooking(_ context.Context, booking domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	f.bookings = append(f.bookings, booking)
	return nil
}
