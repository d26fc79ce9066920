package weather

// Location represents a logical place a report is requested for.
// City/Country must be provided; Country is a two-letter ISO code.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Coordinates is a resolved latitude/longitude pair. It is produced once
// per invocation by the geocoder and never mutated afterwards.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentConditions is the normalized view of the provider's current
// weather payload. Numeric fields the provider may omit are pointers;
// the formatter renders absent values as a placeholder.
type CurrentConditions struct {
	TempC       *float64 `json:"tempC,omitempty"`
	FeelsLikeC  *float64 `json:"feelsLikeC,omitempty"`
	HumidityPct *float64 `json:"humidityPercent,omitempty"`
	PressureHpa *float64 `json:"pressureHpa,omitempty"`
	WindSpeedMS *float64 `json:"windSpeedMs,omitempty"`
	VisibilityM *float64 `json:"visibilityM,omitempty"`
	Condition   string   `json:"condition,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ForecastEntry is one timestamped reading from the provider's
// 5-day/3-hour forecast feed, before daily normalization.
type ForecastEntry struct {
	Timestamp   int64 // unix seconds
	TempMinC    float64
	TempMaxC    float64
	Condition   string
	Description string
}

// DailyRecord summarizes all forecast entries that fall on one calendar
// day. Min/max only ever widen as more entries for the day are seen;
// condition and description come from the day's first entry.
type DailyRecord struct {
	Date        string  `json:"date"` // YYYY-MM-DD, local time
	TempMinC    float64 `json:"tempMinC"`
	TempMaxC    float64 `json:"tempMaxC"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
}

// WeatherBundle is the normalized result handed from the service to the
// formatter (and to the serve-mode API): the requested location, its
// resolved coordinates, current conditions, and the daily forecast.
type WeatherBundle struct {
	City        string            `json:"city"`
	Country     string            `json:"country"`
	Coordinates Coordinates       `json:"coordinates"`
	Current     CurrentConditions `json:"current"`
	Daily       []DailyRecord     `json:"daily"`
}
