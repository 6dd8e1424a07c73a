package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"surfsup-api/internal/modules/climate/types"
)

//go:embed sql/get-latest-date.sql
var getLatestDateSQL string

//go:embed sql/get-date-bounds.sql
var getDateBoundsSQL string

//go:embed sql/date-exists.sql
var dateExistsSQL string

//go:embed sql/get-measurements-since.sql
var getMeasurementsSinceSQL string

//go:embed sql/get-station-measurements-since.sql
var getStationMeasurementsSinceSQL string

//go:embed sql/get-station-ids.sql
var getStationIDsSQL string

//go:embed sql/get-most-active-station.sql
var getMostActiveStationSQL string

//go:embed sql/get-temperature-stats-from.sql
var getTemperatureStatsFromSQL string

//go:embed sql/get-temperature-stats-between.sql
var getTemperatureStatsBetweenSQL string

// ClimateRepository hands out request-scoped sessions over the measurement
// and station tables.
type ClimateRepository interface {
	// WithSession pins one pooled connection for the duration of fn and
	// releases it when fn returns, whatever the outcome.
	WithSession(ctx context.Context, fn func(ctx context.Context, s Session) error) error
	VerifySchema(ctx context.Context) error
}

// Session is the set of queries available while a connection is held.
type Session interface {
	// LatestDate returns max(date); ok is false when the table is empty.
	LatestDate(ctx context.Context) (date string, ok bool, err error)
	DateBounds(ctx context.Context) (types.DateBounds, error)
	DateExists(ctx context.Context, date string) (bool, error)
	MeasurementsSince(ctx context.Context, from string) ([]types.Measurement, error)
	StationMeasurementsSince(ctx context.Context, station string, from string) ([]types.Measurement, error)
	StationIDs(ctx context.Context) ([]string, error)
	// MostActiveStation returns the station with the most rows; ok is false
	// when the table is empty.
	MostActiveStation(ctx context.Context) (station string, ok bool, err error)
	// TemperatureStats aggregates tobs over date >= from, and date <= to
	// when to is non-empty.
	TemperatureStats(ctx context.Context, from string, to string) (types.TemperatureStats, error)
}

type repositoryImpl struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func NewRepository(db *sql.DB, queryTimeout time.Duration) ClimateRepository {
	return &repositoryImpl{db: db, queryTimeout: queryTimeout}
}

func (r *repositoryImpl) WithSession(ctx context.Context, fn func(ctx context.Context, s Session) error) error {
	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("release connection", "error", err)
		}
	}()

	return fn(ctx, &session{conn: conn})
}

type session struct {
	conn *sql.Conn
}

func (s *session) LatestDate(ctx context.Context) (string, bool, error) {
	var d sql.NullString
	if err := s.conn.QueryRowContext(ctx, getLatestDateSQL).Scan(&d); err != nil {
		return "", false, fmt.Errorf("latest date: %w", err)
	}
	return d.String, d.Valid, nil
}

func (s *session) DateBounds(ctx context.Context) (types.DateBounds, error) {
	var lo, hi sql.NullString
	if err := s.conn.QueryRowContext(ctx, getDateBoundsSQL).Scan(&lo, &hi); err != nil {
		return types.DateBounds{}, fmt.Errorf("date bounds: %w", err)
	}
	return types.DateBounds{Min: lo.String, Max: hi.String}, nil
}

func (s *session) DateExists(ctx context.Context, date string) (bool, error) {
	var exists bool
	if err := s.conn.QueryRowContext(ctx, dateExistsSQL, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("date exists %q: %w", date, err)
	}
	return exists, nil
}

func (s *session) MeasurementsSince(ctx context.Context, from string) ([]types.Measurement, error) {
	rows, err := s.conn.QueryContext(ctx, getMeasurementsSinceSQL, from)
	if err != nil {
		return nil, fmt.Errorf("measurements since %s: %w", from, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close measurement rows", "error", err)
		}
	}()
	return scanMeasurements(rows)
}

func (s *session) StationMeasurementsSince(ctx context.Context, station string, from string) ([]types.Measurement, error) {
	rows, err := s.conn.QueryContext(ctx, getStationMeasurementsSinceSQL, from, station)
	if err != nil {
		return nil, fmt.Errorf("measurements for %s since %s: %w", station, from, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close station measurement rows", "error", err)
		}
	}()
	return scanMeasurements(rows)
}

func (s *session) StationIDs(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, getStationIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("station ids: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close station rows", "error", err)
		}
	}()
	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *session) MostActiveStation(ctx context.Context) (string, bool, error) {
	var (
		station  string
		readings int
	)
	err := s.conn.QueryRowContext(ctx, getMostActiveStationSQL).Scan(&station, &readings)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("most active station: %w", err)
	}
	return station, true, nil
}

func (s *session) TemperatureStats(ctx context.Context, from string, to string) (types.TemperatureStats, error) {
	var row *sql.Row
	if to == "" {
		row = s.conn.QueryRowContext(ctx, getTemperatureStatsFromSQL, from)
	} else {
		row = s.conn.QueryRowContext(ctx, getTemperatureStatsBetweenSQL, from, to)
	}

	var (
		stats types.TemperatureStats
		avg   sql.NullFloat64
	)
	if err := row.Scan(&stats.Min, &avg, &stats.Max); err != nil {
		return types.TemperatureStats{}, fmt.Errorf("temperature stats %s..%s: %w", from, to, err)
	}
	if avg.Valid {
		stats.Avg = &avg.Float64
	}
	return stats, nil
}

func scanMeasurements(rows *sql.Rows) ([]types.Measurement, error) {
	out := []types.Measurement{}
	for rows.Next() {
		var (
			m          types.Measurement
			prcp, tobs sql.NullFloat64
		)
		if err := rows.Scan(&m.ID, &m.Station, &m.Date, &prcp, &tobs); err != nil {
			return nil, err
		}
		if prcp.Valid {
			m.Prcp = &prcp.Float64
		}
		if tobs.Valid {
			m.Tobs = &tobs.Float64
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
