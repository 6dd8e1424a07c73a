package types

// Measurement is one daily reading row of the measurement table.
type Measurement struct {
	ID      int64
	Station string
	Date    string
	Prcp    *float64
	Tobs    *float64
}

// Station is one row of the station table; only the identifier is used.
type Station struct {
	Station string
}

// Precipitation is the wire shape of /api/v1.0/precipitation.
type Precipitation struct {
	Date string   `json:"date"`
	Prcp *float64 `json:"prcp"`
}

// TemperatureObservation is the wire shape of /api/v1.0/tobs.
type TemperatureObservation struct {
	Date        string `json:"Date"`
	Temperature *int   `json:"Temperature"`
}

// StationTemperature is the wire shape of /api/v1.0/mstacttemp.
type StationTemperature struct {
	Station     string `json:"Station"`
	Date        string `json:"Date"`
	Temperature *int   `json:"Temperature"`
}

// DateBounds is the [Min, Max] range of stored measurement dates. Both are
// empty when the table has no rows.
type DateBounds struct {
	Min string
	Max string
}

// TemperatureStats holds min/avg/max of tobs over a date range. Min and Max
// keep the stored representation: int64, float64, or nil for an empty range.
type TemperatureStats struct {
	Min any
	Avg *float64
	Max any
}

// Route is one entry of the index page.
type Route struct {
	Description string
	Path        string
}
