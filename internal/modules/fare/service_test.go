package fare

import (
	"context"
	"errors"
	"math"
	"testing"

	"smartride/internal/config"
)

func testFareConfig() config.FareConfig {
	return config.FareConfig{
		BaseFare:       50,
		MinimumFare:    30,
		BookingFee:     10,
		CommissionRate: 0.10,
	}
}

func assertMoney(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

// ---------------------------------------------------------------------------
// Compute
// ---------------------------------------------------------------------------

func TestCompute(t *testing.T) {
	tests := []struct {
		name             string
		cfg              config.FareConfig
		distanceKm       float64
		pricePerKm       float64
		seats            int
		wantDistanceFare float64
		wantTotal        float64
		wantMinimum      bool
	}{
		{
			name: "two seats on a ten km trip",
			cfg:  testFareConfig(),
			distanceKm: 10, pricePerKm: 5, seats: 2,
			wantDistanceFare: 50,
			wantTotal:        210, // (50 + 50) * 2 + 10
			wantMinimum:      false,
		},
		{
			name: "single seat",
			cfg:  testFareConfig(),
			distanceKm: 10, pricePerKm: 5, seats: 1,
			wantDistanceFare: 50,
			wantTotal:        110,
			wantMinimum:      false,
		},
		{
			name: "minimum fare floor",
			cfg:  config.FareConfig{BaseFare: 0, MinimumFare: 30, BookingFee: 0, CommissionRate: 0.10},
			distanceKm: 1, pricePerKm: 0, seats: 1,
			wantDistanceFare: 0,
			wantTotal:        30,
			wantMinimum:      true,
		},
		{
			name: "fractional fare rounds to two decimals",
			cfg:  config.FareConfig{BaseFare: 0, MinimumFare: 0, BookingFee: 0},
			distanceKm: 3.333, pricePerKm: 3, seats: 1,
			wantDistanceFare: 10, // 9.999 rounds up
			wantTotal:        10,
			wantMinimum:      false,
		},
		{
			name: "free ride still floors at the minimum",
			cfg:  testFareConfig(),
			distanceKm: 0.1, pricePerKm: 0, seats: 1,
			wantDistanceFare: 0,
			wantTotal:        60, // 50 base + 10 fee clears the 30 minimum
			wantMinimum:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.cfg, nil)
			got, err := svc.Compute(tt.distanceKm, tt.pricePerKm, tt.seats)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			assertMoney(t, got.DistanceFare, tt.wantDistanceFare, "DistanceFare")
			assertMoney(t, got.TotalFare, tt.wantTotal, "TotalFare")
			assertMoney(t, got.BaseFare, tt.cfg.BaseFare, "BaseFare")
			assertMoney(t, got.BookingFee, tt.cfg.BookingFee, "BookingFee")
			if got.SeatsBooked != tt.seats {
				t.Errorf("SeatsBooked = %d, want %d", got.SeatsBooked, tt.seats)
			}
			if got.MinimumFareApplied != tt.wantMinimum {
				t.Errorf("MinimumFareApplied = %v, want %v", got.MinimumFareApplied, tt.wantMinimum)
			}
		})
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	svc := NewService(testFareConfig(), nil)

	tests := []struct {
		name       string
		distanceKm float64
		pricePerKm float64
		seats      int
	}{
		{"zero distance", 0, 5, 1},
		{"negative distance", -3, 5, 1},
		{"negative price", 10, -1, 1},
		{"zero seats", 10, 5, 0},
		{"negative seats", 10, 5, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compute(tt.distanceKm, tt.pricePerKm, tt.seats)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Compute() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

// Same inputs must always produce the same breakdown.
func TestCompute_Deterministic(t *testing.T) {
	svc := NewService(testFareConfig(), nil)

	first, err := svc.Compute(12.34, 7.5, 3)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.Compute(12.34, 7.5, 3)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if again != first {
			t.Fatalf("Compute() not deterministic: %+v vs %+v", again, first)
		}
	}
}

// ---------------------------------------------------------------------------
// earnings and splits
// ---------------------------------------------------------------------------

func TestDriverEarnings(t *testing.T) {
	svc := NewService(testFareConfig(), nil)

	tests := []struct {
		totalFare float64
		want      float64
	}{
		{210, 189},
		{100, 90},
		{33.33, 30}, // 29.997 rounds to 30.00
		{0, 0},
	}
	for _, tt := range tests {
		assertMoney(t, svc.DriverEarnings(tt.totalFare), tt.want, "DriverEarnings")
	}
}

func TestSplit(t *testing.T) {
	svc := NewService(testFareConfig(), nil)

	got, err := svc.Split(210, 3)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	assertMoney(t, got, 70, "Split")

	got, err = svc.Split(100, 3)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	assertMoney(t, got, 33.33, "Split")

	if _, err := svc.Split(100, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Split(100, 0) error = %v, want ErrInvalidInput", err)
	}
}

// ---------------------------------------------------------------------------
// trip estimates
// ---------------------------------------------------------------------------

type stubDistance struct {
	km  float64
	err error
}

func (s *stubDistance) DistanceKm(context.Context, string, string) (float64, error) {
	return s.km, s.err
}

func TestEstimateTrip(t *testing.T) {
	svc := NewService(testFareConfig(), &stubDistance{km: 10})

	breakdown, distanceKm, err := svc.EstimateTrip(context.Background(), "CityA", "CityB", 5, 2)
	if err != nil {
		t.Fatalf("EstimateTrip() error = %v", err)
	}
	assertMoney(t, distanceKm, 10, "distance")
	assertMoney(t, breakdown.TotalFare, 210, "TotalFare")
}

func TestEstimateTrip_UpstreamError(t *testing.T) {
	upstream := errors.New("distance matrix unavailable")
	svc := NewService(testFareConfig(), &stubDistance{err: upstream})

	_, _, err := svc.EstimateTrip(context.Background(), "CityA", "CityB", 5, 2)
	if !errors.Is(err, upstream) {
		t.Errorf("EstimateTrip() error = %v, want upstream error", err)
	}
}

func TestEstimateTrip_InvalidSeats(t *testing.T) {
	svc := NewService(testFareConfig(), &stubDistance{km: 10})

	_, _, err := svc.EstimateTrip(context.Background(), "CityA", "CityB", 5, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("EstimateTrip() error = %v, want ErrInvalidInput", err)
	}
}
