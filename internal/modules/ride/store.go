// README: Ride store backed by PostgreSQL (read-only candidate queries).
package ride

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartride/internal/types"
)

var ErrNotFound = errors.New("ride not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// SearchActive returns active rides with seats left departing inside the
// window. These are the matching candidates for one search request.
func (s *Store) SearchActive(ctx context.Context, from, until time.Time) ([]Ride, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, driver_id, source, destination, departure_at,
		       price_per_km, available_seats, status
		FROM rides
		WHERE status = 'ACTIVE'
		  AND available_seats > 0
		  AND departure_at >= $1
		  AND departure_at < $2
		ORDER BY departure_at ASC`,
		from, until,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []Ride
	for rows.Next() {
		var r Ride
		if err := rows.Scan(
			&r.ID, &r.DriverID, &r.Source, &r.Destination, &r.DepartureAt,
			&r.PricePerKm, &r.AvailableSeats, &r.Status,
		); err != nil {
			return nil, err
		}
		rides = append(rides, r)
	}
	return rides, rows.Err()
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Ride, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, driver_id, source, destination, departure_at,
		       price_per_km, available_seats, status
		FROM rides
		WHERE id = $1`, string(id),
	)

	var r Ride
	err := row.Scan(
		&r.ID, &r.DriverID, &r.Source, &r.Destination, &r.DepartureAt,
		&r.PricePerKm, &r.AvailableSeats, &r.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
