package country

import "context"

// Directory abstracts the country directory service.
type Directory interface {
	ListCountries(ctx context.Context, continent string) ([]string, error)
	ResolveCountry(ctx context.Context, name string) (CountryRecord, error)
}

// WeatherProvider abstracts the weather service.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (float64, error)
	ForecastWeather(ctx context.Context, lat, lon float64, count int) ([]ForecastSample, error)
}

// ChartRenderer abstracts the chart rendering service.
type ChartRenderer interface {
	RenderChart(ctx context.Context, chart ChartRequest) ([]byte, error)
}

// FavoritesStore is the contract the favorites store must satisfy.
type FavoritesStore interface {
	Add(name string) bool
	Remove(name string) bool
	List() []string
}
