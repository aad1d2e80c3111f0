package country

// CountryRecord is the subset of a directory record this service reads.
// Pointer and slice fields stay nil when the directory omits them, so
// callers can tell a missing field from a zero value.
type CountryRecord struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CapitalInfo *CapitalInfo `json:"capitalInfo"`
	Population  *int64       `json:"population"`
	Area        *float64     `json:"area"`
}

type CapitalInfo struct {
	LatLng []float64 `json:"latlng"`
}

// CountryDetail is the geographic summary returned by the details endpoint.
type CountryDetail struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Population int64   `json:"population"`
	Area       float64 `json:"area"`
}

// NamedCountry wraps a country name for list responses.
type NamedCountry struct {
	Name string `json:"name"`
}

// Temperature is the current temperature in degrees Celsius.
type Temperature struct {
	Temperature float64 `json:"temperature"`
}

// ForecastSample is one 3-hour forecast slot.
type ForecastSample struct {
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
}

// ChartRequest describes a line chart to be rendered by the chart service.
type ChartRequest struct {
	Type string    `json:"type"`
	Data ChartData `json:"data"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Fill  bool      `json:"fill"`
}

// FavoriteResult reports the outcome of a favorite or unfavorite call.
type FavoriteResult struct {
	Name    string `json:"-"`
	Changed bool   `json:"-"`
	Message string `json:"message"`
}

// NewLineChart builds the forecast chart for the given series label.
func NewLineChart(label string, samples []ForecastSample) ChartRequest {
	labels := make([]string, 0, len(samples))
	temps := make([]float64, 0, len(samples))
	for _, s := range samples {
		labels = append(labels, s.Timestamp)
		temps = append(temps, s.Temperature)
	}

	return ChartRequest{
		Type: "line",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{
				{Label: label, Data: temps, Fill: false},
			},
		},
	}
}
