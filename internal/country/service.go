package country

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Service composes the upstream collaborators and the favorites store
// into the operations exposed over HTTP.
type Service struct {
	directory Directory
	weather   WeatherProvider
	charts    ChartRenderer
	favorites FavoritesStore
	logger    logrus.FieldLogger
}

// NewService creates a new Service.
func NewService(directory Directory, weather WeatherProvider, charts ChartRenderer, favorites FavoritesStore, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		directory: directory,
		weather:   weather,
		charts:    charts,
		favorites: favorites,
		logger:    logger,
	}
}

// Countries lists the official names of all countries, or of one continent.
func (s *Service) Countries(ctx context.Context, continent string) ([]NamedCountry, error) {
	names, err := s.directory.ListCountries(ctx, continent)
	if err != nil {
		return nil, err
	}
	return named(names), nil
}

// Details resolves a country and extracts its capital coordinates,
// population and area.
func (s *Service) Details(ctx context.Context, name string) (CountryDetail, error) {
	record, err := s.directory.ResolveCountry(ctx, name)
	if err != nil {
		return CountryDetail{}, err
	}
	return ExtractDetail(record)
}

// ExtractDetail is the second step of the details pipeline.
func ExtractDetail(record CountryRecord) (CountryDetail, error) {
	if record.CapitalInfo == nil || len(record.CapitalInfo.LatLng) < 2 {
		return CountryDetail{}, malformed("capitalInfo.latlng")
	}
	if record.Population == nil {
		return CountryDetail{}, malformed("population")
	}
	if record.Area == nil {
		return CountryDetail{}, malformed("area")
	}

	return CountryDetail{
		Latitude:   record.CapitalInfo.LatLng[0],
		Longitude:  record.CapitalInfo.LatLng[1],
		Population: *record.Population,
		Area:       *record.Area,
	}, nil
}

// Temperature returns the current temperature at the country's capital.
func (s *Service) Temperature(ctx context.Context, name string) (Temperature, error) {
	detail, err := s.Details(ctx, name)
	if err != nil {
		return Temperature{}, err
	}

	temp, err := s.weather.CurrentWeather(ctx, detail.Latitude, detail.Longitude)
	if err != nil {
		return Temperature{}, err
	}
	return Temperature{Temperature: temp}, nil
}

// Favorite adds the country's official name to the favorites.
func (s *Service) Favorite(ctx context.Context, name string) (FavoriteResult, error) {
	official, err := s.canonicalName(ctx, name)
	if err != nil {
		return FavoriteResult{}, err
	}

	if !s.favorites.Add(official) {
		return FavoriteResult{
			Name:    official,
			Message: fmt.Sprintf("%s is already a favorite.", official),
		}, nil
	}

	s.logger.WithField("country", official).Info("favorite added")
	return FavoriteResult{
		Name:    official,
		Changed: true,
		Message: fmt.Sprintf("%s has been added to favorites.", official),
	}, nil
}

// Unfavorite removes the country's official name from the favorites.
func (s *Service) Unfavorite(ctx context.Context, name string) (FavoriteResult, error) {
	official, err := s.canonicalName(ctx, name)
	if err != nil {
		return FavoriteResult{}, err
	}

	if !s.favorites.Remove(official) {
		return FavoriteResult{
			Name:    official,
			Message: fmt.Sprintf("%s was no favorite.", official),
		}, nil
	}

	s.logger.WithField("country", official).Info("favorite removed")
	return FavoriteResult{
		Name:    official,
		Changed: true,
		Message: fmt.Sprintf("%s has been removed from favorites.", official),
	}, nil
}

// Favorites lists the current favorites in insertion order.
func (s *Service) Favorites() []NamedCountry {
	return named(s.favorites.List())
}

// TemperatureGraph renders a line chart of the forecast temperature at the
// country's capital for the next rawDays days.
func (s *Service) TemperatureGraph(ctx context.Context, name, rawDays string) ([]byte, error) {
	days, err := ParseDays(rawDays)
	if err != nil {
		return nil, err
	}

	detail, err := s.Details(ctx, name)
	if err != nil {
		return nil, err
	}

	samples, err := s.weather.ForecastWeather(ctx, detail.Latitude, detail.Longitude, days*SlotsPerDay)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"country": name,
		"days":    days,
		"samples": len(samples),
	}).Debug("rendering forecast chart")

	chart := NewLineChart(fmt.Sprintf("Temperature Forecast in %s", name), samples)
	return s.charts.RenderChart(ctx, chart)
}

func (s *Service) canonicalName(ctx context.Context, name string) (string, error) {
	record, err := s.directory.ResolveCountry(ctx, name)
	if err != nil {
		return "", err
	}
	if record.Name.Official == "" {
		return "", malformed("name.official")
	}
	return record.Name.Official, nil
}

func named(names []string) []NamedCountry {
	out := make([]NamedCountry, 0, len(names))
	for _, n := range names {
		out = append(out, NamedCountry{Name: n})
	}
	return out
}
