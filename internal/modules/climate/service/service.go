package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"surfsup-api/internal/modules/climate/repository"
	"surfsup-api/internal/modules/climate/types"
)

const (
	dateLayout = "2006-01-02"
	windowDays = 365
)

var routes = []types.Route{
	{Description: "Look at the precipitation data for the past year", Path: "/api/v1.0/precipitation"},
	{Description: "Look at a list of the stations", Path: "/api/v1.0/stations"},
	{Description: "Look at the temperature for the past year", Path: "/api/v1.0/tobs"},
	{Description: "Look at the temperatures for the past year for most active station", Path: "/api/v1.0/mstacttemp"},
	{Description: "To find the min, max, and avg temperature from a certain date", Path: "/api/v1.0/start"},
	{Description: "To find the min, max, and avg temperature between specific dates", Path: "/api/v1.0/start/end"},
}

type ClimateService interface {
	ListRoutes() []types.Route
	GetPrecipitation(ctx context.Context) ([]types.Precipitation, error)
	GetStations(ctx context.Context) ([]string, error)
	GetTemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error)
	GetMostActiveStationTemperatures(ctx context.Context) ([]types.StationTemperature, error)
	// GetTemperatureStats summarizes tobs from start to the last stored date.
	GetTemperatureStats(ctx context.Context, start string) ([]string, error)
	// GetTemperatureStatsBetween summarizes tobs over start..end inclusive.
	GetTemperatureStatsBetween(ctx context.Context, start, end string) ([]string, error)
}

type Service struct {
	repository repository.ClimateRepository
}

func NewService(repository repository.ClimateRepository) *Service {
	return &Service{repository: repository}
}

func (s *Service) ListRoutes() []types.Route {
	out := make([]types.Route, len(routes))
	copy(out, routes)
	return out
}

func (s *Service) GetPrecipitation(ctx context.Context) ([]types.Precipitation, error) {
	out := []types.Precipitation{}
	err := s.repository.WithSession(ctx, func(ctx context.Context, sess repository.Session) error {
		rows, err := lastYear(ctx, sess)
		if err != nil {
			return err
		}
		for _, m := range rows {
			out = append(out, types.Precipitation{Date: m.Date, Prcp: m.Prcp})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetStations(ctx context.Context) ([]string, error) {
	var out []string
	err := s.repository.WithSession(ctx, func(ctx context.Context, sess repository.Session) error {
		var err error
		out, err = sess.StationIDs(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetTemperatureObservations(ctx context.Context) ([]types.TemperatureObservation, error) {
	out := []types.TemperatureObservation{}
	err := s.repository.WithSession(ctx, func(ctx context.Context, sess repository.Session) error {
		rows, err := lastYear(ctx, sess)
		if err != nil {
			return err
		}
		for _, m := range rows {
			out = append(out, types.TemperatureObservation{Date: m.Date, Temperature: truncate(m.Tobs)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetMostActiveStationTemperatures(ctx context.Context) ([]types.StationTemperature, error) {
	out := []types.StationTemperature{}
	err := s.repository.WithSession(ctx, func(ctx context.Context, sess repository.Session) error {
		from, ok, err := windowStart(ctx, sess)
		if err != nil || !ok {
			return err
		}
		station, ok, err := sess.MostActiveStation(ctx)
		if err != nil || !ok {
			return err
		}
		slog.Debug("most active station", "station", station, "from", from)

		rows, err := sess.StationMeasurementsSince(ctx, station, from)
		if err != nil {
			return err
		}
		for _, m := range rows {
			out = append(out, types.StationTemperature{Station: m.Station, Date: m.Date, Temperature: truncate(m.Tobs)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetTemperatureStats(ctx context.Context, start string) ([]string, error) {
	var out []string
	err := s.repository.WithSession(ctx, func(ctx context.Context, sess repository.Session) error {
		ok, err := sess.DateExists(ctx, start)
		if err != nil {
			return err
		}
		if !ok {
			return invalidRange(ctx, sess, InvalidDate, start, "")
		}

		stats, err := sess.TemperatureStats(ctx, start, "")
		if err != nil {
			return err
		}
		out = statsLines(stats, "Entered Start Date: "+start)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) GetTemperatureStatsBetween(ctx context.Context, start, end string) ([]string, error) {
	var out []string
	err := s.repository.WithSession(ctx, func(ctx context.Context, sess repository.Session) error {
		startOK, err := sess.DateExists(ctx, start)
		if err != nil {
			return err
		}
		endOK, err := sess.DateExists(ctx, end)
		if err != nil {
			return err
		}

		switch {
		case !startOK && !endOK:
			return invalidRange(ctx, sess, InvalidStartAndEnd, start, end)
		case !startOK:
			return invalidRange(ctx, sess, InvalidStart, start, end)
		case !endOK:
			return invalidRange(ctx, sess, InvalidEnd, start, end)
		case start > end:
			// Stored dates are ISO-8601, so string order is date order.
			return invalidRange(ctx, sess, StartAfterEnd, start, end)
		}

		stats, err := sess.TemperatureStats(ctx, start, end)
		if err != nil {
			return err
		}
		out = statsLines(stats, "Entered Start Date: "+start, "Entered End Date: "+end)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// windowStart returns max(date) minus one year as a date string; ok is false
// when there are no measurements.
func windowStart(ctx context.Context, sess repository.Session) (string, bool, error) {
	last, ok, err := sess.LatestDate(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	t, err := time.Parse(dateLayout, last)
	if err != nil {
		return "", false, fmt.Errorf("parse latest date %q: %w", last, err)
	}
	return t.AddDate(0, 0, -windowDays).Format(dateLayout), true, nil
}

func lastYear(ctx context.Context, sess repository.Session) ([]types.Measurement, error) {
	from, ok, err := windowStart(ctx, sess)
	if err != nil || !ok {
		return nil, err
	}
	return sess.MeasurementsSince(ctx, from)
}

func invalidRange(ctx context.Context, sess repository.Session, kind InvalidInput, start, end string) error {
	bounds, err := sess.DateBounds(ctx)
	if err != nil {
		return err
	}
	return &InvalidDateRangeError{Kind: kind, Start: start, End: end, Bounds: bounds}
}

func statsLines(stats types.TemperatureStats, entered ...string) []string {
	return append(entered,
		"The lowest Temperature was: "+formatReading(stats.Min)+" F",
		"The average Temperature was: "+formatAverage(stats.Avg)+" F",
		"The highest Temperature was: "+formatReading(stats.Max)+" F",
	)
}

// truncate drops the fractional part toward zero.
func truncate(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
