package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JeanExtreme002/FlightRadarAPI/pkg/fr24"
)

// FlightRepository handles database operations for flight snapshots.
type FlightRepository struct {
	db *DB
}

// NewFlightRepository creates a new flight repository.
func NewFlightRepository(db *DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// UpsertFlight inserts or updates a flight record and appends a position
// history row when the flight has moved since the last snapshot.
func (r *FlightRepository) UpsertFlight(ctx context.Context, flight *fr24.Flight, region string, now time.Time) error {
	var prev flightPosition
	err := r.db.QueryRowContext(ctx,
		`SELECT latitude, longitude, altitude_ft, ground_speed_kts
		 FROM flights
		 WHERE fr24_id = $1`,
		flight.ID,
	).Scan(&prev.Latitude, &prev.Longitude, &prev.AltitudeFt, &prev.GroundSpeedKts)

	var prevPtr *flightPosition
	if err == nil {
		prevPtr = &prev
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to query previous position: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO flights (
			fr24_id, icao_24bit, callsign, number, registration,
			aircraft_code, airline_icao, airline_iata,
			origin_iata, destination_iata, squawk,
			latitude, longitude, altitude_ft, ground_speed_kts,
			heading_deg, vertical_speed_fpm, on_ground, region,
			is_active, first_seen, last_seen, position_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19,
			TRUE, $20, $20, 1
		)
		ON CONFLICT (fr24_id) DO UPDATE SET
			callsign = EXCLUDED.callsign,
			number = EXCLUDED.number,
			origin_iata = EXCLUDED.origin_iata,
			destination_iata = EXCLUDED.destination_iata,
			squawk = EXCLUDED.squawk,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			altitude_ft = EXCLUDED.altitude_ft,
			ground_speed_kts = EXCLUDED.ground_speed_kts,
			heading_deg = EXCLUDED.heading_deg,
			vertical_speed_fpm = EXCLUDED.vertical_speed_fpm,
			on_ground = EXCLUDED.on_ground,
			region = EXCLUDED.region,
			is_active = TRUE,
			last_seen = EXCLUDED.last_seen,
			position_count = flights.position_count + 1`,
		flight.ID, flight.ICAO24Bit, flight.Callsign, flight.Number, flight.Registration,
		flight.AircraftCode, flight.AirlineICAO, flight.AirlineIATA,
		flight.OriginAirportIATA, flight.DestinationAirportIATA, flight.Squawk,
		flight.Latitude, flight.Longitude, flight.Altitude, flight.GroundSpeed,
		flight.Heading, flight.VerticalSpeed, flight.OnGround, region,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert flight: %w", err)
	}

	if prevPtr != nil && positionUnchanged(flight, *prevPtr) {
		// Common for parked aircraft; skip the redundant history row.
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO flight_positions (
			fr24_id, latitude, longitude, altitude_ft, ground_speed_kts,
			heading_deg, vertical_speed_fpm, on_ground, reported_at, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		flight.ID, flight.Latitude, flight.Longitude, flight.Altitude, flight.GroundSpeed,
		flight.Heading, flight.VerticalSpeed, flight.OnGround,
		time.Unix(flight.Time, 0).UTC(), now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert position history: %w", err)
	}

	return nil
}

// ActiveFlights returns the currently active flight records, most recently
// seen first.
func (r *FlightRepository) ActiveFlights(ctx context.Context, limit int) ([]FlightRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT fr24_id, icao_24bit, callsign, number, registration,
		        aircraft_code, airline_icao, origin_iata, destination_iata,
		        latitude, longitude, altitude_ft, ground_speed_kts,
		        heading_deg, vertical_speed_fpm, on_ground, region,
		        first_seen, last_seen, position_count
		 FROM flights
		 WHERE is_active = TRUE
		 ORDER BY last_seen DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query active flights: %w", err)
	}
	defer rows.Close()

	var records []FlightRecord
	for rows.Next() {
		var rec FlightRecord
		err := rows.Scan(
			&rec.FR24ID, &rec.ICAO24Bit, &rec.Callsign, &rec.Number, &rec.Registration,
			&rec.AircraftCode, &rec.AirlineICAO, &rec.OriginIATA, &rec.DestinationIATA,
			&rec.Latitude, &rec.Longitude, &rec.AltitudeFt, &rec.GroundSpeedKts,
			&rec.HeadingDeg, &rec.VerticalSpeedFpm, &rec.OnGround, &rec.Region,
			&rec.FirstSeen, &rec.LastSeen, &rec.PositionCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PositionHistory returns the stored track of one flight in chronological
// order.
func (r *FlightRepository) PositionHistory(ctx context.Context, fr24ID string) ([]PositionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT latitude, longitude, altitude_ft, ground_speed_kts,
		        heading_deg, vertical_speed_fpm, on_ground, reported_at
		 FROM flight_positions
		 WHERE fr24_id = $1
		 ORDER BY reported_at ASC`,
		fr24ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query position history: %w", err)
	}
	defer rows.Close()

	var records []PositionRecord
	for rows.Next() {
		var rec PositionRecord
		err := rows.Scan(
			&rec.Latitude, &rec.Longitude, &rec.AltitudeFt, &rec.GroundSpeedKts,
			&rec.HeadingDeg, &rec.VerticalSpeedFpm, &rec.OnGround, &rec.ReportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FlightRecord is a stored flight snapshot.
type FlightRecord struct {
	FR24ID           string
	ICAO24Bit        string
	Callsign         string
	Number           string
	Registration     string
	AircraftCode     string
	AirlineICAO      string
	OriginIATA       string
	DestinationIATA  string
	Latitude         float64
	Longitude        float64
	AltitudeFt       int
	GroundSpeedKts   int
	HeadingDeg       int
	VerticalSpeedFpm int
	OnGround         bool
	Region           string
	FirstSeen        time.Time
	LastSeen         time.Time
	PositionCount    int
}

// PositionRecord is one stored track point.
type PositionRecord struct {
	Latitude         float64
	Longitude        float64
	AltitudeFt       int
	GroundSpeedKts   int
	HeadingDeg       int
	VerticalSpeedFpm int
	OnGround         bool
	ReportedAt       time.Time
}

// flightPosition holds the previously stored position for change detection.
type flightPosition struct {
	Latitude       float64
	Longitude      float64
	AltitudeFt     int
	GroundSpeedKts int
}

// positionUnchanged reports whether the new snapshot matches the stored one
// closely enough to skip a history row. Lat/lon compare to 6 decimal places
// (about 0.1m) and the aircraft must be effectively standing still.
func positionUnchanged(flight *fr24.Flight, prev flightPosition) bool {
	const epsilon = 1e-6
	latSame := flight.Latitude > prev.Latitude-epsilon && flight.Latitude < prev.Latitude+epsilon
	lonSame := flight.Longitude > prev.Longitude-epsilon && flight.Longitude < prev.Longitude+epsilon
	return latSame && lonSame &&
		flight.Altitude == prev.AltitudeFt &&
		flight.GroundSpeed < 1
}
