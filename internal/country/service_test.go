package country_test

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/country-weather-api/internal/country"
	"github.com/i474232898/country-weather-api/internal/store"
)

// fakeDirectory resolves names case-insensitively against a fixed set of records.
type fakeDirectory struct {
	records   map[string]country.CountryRecord
	countries []string
	err       error
	calls     int
}

func (d *fakeDirectory) ListCountries(ctx context.Context, continent string) ([]string, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.countries, nil
}

func (d *fakeDirectory) ResolveCountry(ctx context.Context, name string) (country.CountryRecord, error) {
	d.calls++
	if d.err != nil {
		return country.CountryRecord{}, d.err
	}
	rec, ok := d.records[strings.ToLower(name)]
	if !ok {
		return country.CountryRecord{}, &country.UpstreamError{Service: "restcountries", Status: http.StatusNotFound}
	}
	return rec, nil
}

type fakeWeather struct {
	temp       float64
	samples    []country.ForecastSample
	gotLat     float64
	gotLon     float64
	gotCount   int
	calls      int
	forecastEr error
}

func (w *fakeWeather) CurrentWeather(ctx context.Context, lat, lon float64) (float64, error) {
	w.calls++
	w.gotLat, w.gotLon = lat, lon
	return w.temp, nil
}

func (w *fakeWeather) ForecastWeather(ctx context.Context, lat, lon float64, count int) ([]country.ForecastSample, error) {
	w.calls++
	w.gotLat, w.gotLon, w.gotCount = lat, lon, count
	if w.forecastEr != nil {
		return nil, w.forecastEr
	}
	return w.samples, nil
}

type fakeCharts struct {
	got   country.ChartRequest
	calls int
}

func (c *fakeCharts) RenderChart(ctx context.Context, chart country.ChartRequest) ([]byte, error) {
	c.calls++
	c.got = chart
	return []byte("png"), nil
}

func record(official string, latlng []float64, population int64, area float64) country.CountryRecord {
	var rec country.CountryRecord
	rec.Name.Official = official
	rec.CapitalInfo = &country.CapitalInfo{LatLng: latlng}
	rec.Population = &population
	rec.Area = &area
	return rec
}

type fixture struct {
	svc       *country.Service
	directory *fakeDirectory
	weather   *fakeWeather
	charts    *fakeCharts
	favorites *store.FavoritesStore
}

func newFixture() *fixture {
	belgium := record("Kingdom of Belgium", []float64{50.83, 4.33}, 11555997, 30528)
	germany := record("Federal Republic of Germany", []float64{52.5, 13.4}, 83240525, 357114)

	f := &fixture{
		directory: &fakeDirectory{
			records: map[string]country.CountryRecord{
				"belgium": belgium,
				"germany": germany,
			},
			countries: []string{"Kingdom of Belgium", "Federal Republic of Germany"},
		},
		weather: &fakeWeather{
			temp: 17.2,
			samples: []country.ForecastSample{
				{Timestamp: "2024-05-01 12:00:00", Temperature: 14.1},
				{Timestamp: "2024-05-01 15:00:00", Temperature: 15.3},
			},
		},
		charts:    &fakeCharts{},
		favorites: store.NewFavoritesStore(),
	}
	logger, _ := test.NewNullLogger()
	f.svc = country.NewService(f.directory, f.weather, f.charts, f.favorites, logger)
	return f
}

func TestCountries(t *testing.T) {
	f := newFixture()

	got, err := f.svc.Countries(context.Background(), "Europe")
	require.NoError(t, err)
	assert.Equal(t, []country.NamedCountry{
		{Name: "Kingdom of Belgium"},
		{Name: "Federal Republic of Germany"},
	}, got)
}

func TestDetails(t *testing.T) {
	f := newFixture()

	got, err := f.svc.Details(context.Background(), "Belgium")
	require.NoError(t, err)
	assert.Equal(t, country.CountryDetail{
		Latitude:   50.83,
		Longitude:  4.33,
		Population: 11555997,
		Area:       30528,
	}, got)
}

func TestExtractDetailMissingFields(t *testing.T) {
	complete := record("X", []float64{1, 2}, 3, 4)

	tests := []struct {
		name   string
		mutate func(r *country.CountryRecord)
		field  string
	}{
		{name: "no capital info", mutate: func(r *country.CountryRecord) { r.CapitalInfo = nil }, field: "capitalInfo.latlng"},
		{name: "short latlng", mutate: func(r *country.CountryRecord) { r.CapitalInfo.LatLng = []float64{1} }, field: "capitalInfo.latlng"},
		{name: "no population", mutate: func(r *country.CountryRecord) { r.Population = nil }, field: "population"},
		{name: "no area", mutate: func(r *country.CountryRecord) { r.Area = nil }, field: "area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record("X", []float64{1, 2}, 3, 4)
			tt.mutate(&rec)

			_, err := country.ExtractDetail(rec)
			require.ErrorIs(t, err, country.ErrMalformedData)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	_, err := country.ExtractDetail(complete)
	assert.NoError(t, err)
}

func TestTemperatureUsesCapitalCoordinates(t *testing.T) {
	f := newFixture()

	got, err := f.svc.Temperature(context.Background(), "Belgium")
	require.NoError(t, err)

	assert.Equal(t, country.Temperature{Temperature: 17.2}, got)
	assert.Equal(t, 50.83, f.weather.gotLat)
	assert.Equal(t, 4.33, f.weather.gotLon)
}

func TestFavoriteTwiceReportsAlreadyFavorite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.Favorite(ctx, "Belgium")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Kingdom of Belgium has been added to favorites.", res.Message)

	res, err = f.svc.Favorite(ctx, "Belgium")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, "Kingdom of Belgium is already a favorite.", res.Message)

	assert.Len(t, f.favorites.List(), 1)
}

func TestUnfavoriteMissingReportsNoFavorite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Favorite(ctx, "Germany")
	require.NoError(t, err)

	res, err := f.svc.Unfavorite(ctx, "Belgium")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, "Kingdom of Belgium was no favorite.", res.Message)
	assert.Equal(t, []string{"Federal Republic of Germany"}, f.favorites.List())
}

func TestFavoritesAreCanonicalised(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Favorite(ctx, "belgium")
	require.NoError(t, err)
	assert.Equal(t, []country.NamedCountry{{Name: "Kingdom of Belgium"}}, f.svc.Favorites())

	res, err := f.svc.Unfavorite(ctx, "Belgium")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Kingdom of Belgium has been removed from favorites.", res.Message)
	assert.Empty(t, f.svc.Favorites())
}

func TestFavoriteAddAddRemove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _ = f.svc.Favorite(ctx, "Belgium")
	_, _ = f.svc.Favorite(ctx, "Germany")
	_, _ = f.svc.Unfavorite(ctx, "Belgium")

	assert.Equal(t, []country.NamedCountry{{Name: "Federal Republic of Germany"}}, f.svc.Favorites())
}

func TestUnknownCountryPropagatesUpstreamStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	calls := map[string]func() error{
		"details": func() error {
			_, err := f.svc.Details(ctx, "Atlantis")
			return err
		},
		"temperature": func() error {
			_, err := f.svc.Temperature(ctx, "Atlantis")
			return err
		},
		"favorite": func() error {
			_, err := f.svc.Favorite(ctx, "Atlantis")
			return err
		},
		"unfavorite": func() error {
			_, err := f.svc.Unfavorite(ctx, "Atlantis")
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var upErr *country.UpstreamError
			require.ErrorAs(t, call(), &upErr)
			assert.Equal(t, http.StatusNotFound, upErr.Status)
		})
	}
	assert.Zero(t, f.weather.calls)
	assert.Empty(t, f.favorites.List())
}

func TestTemperatureGraphRejectsBadDaysWithoutNetwork(t *testing.T) {
	tests := []struct {
		raw    string
		reason country.InvalidArgumentReason
		msg    string
	}{
		{raw: "0", reason: country.ReasonOutOfRange, msg: "the given amount of days 0 is invalid. Should be an integer between 1 and 5."},
		{raw: "6", reason: country.ReasonOutOfRange, msg: "the given amount of days 6 is invalid. Should be an integer between 1 and 5."},
		{raw: "-1", reason: country.ReasonOutOfRange, msg: "the given amount of days -1 is invalid. Should be an integer between 1 and 5."},
		{raw: "99999999999999999999", reason: country.ReasonOutOfRange, msg: "the given amount of days 99999999999999999999 is invalid. Should be an integer between 1 and 5."},
		{raw: "-99999999999999999999", reason: country.ReasonOutOfRange, msg: "the given amount of days -99999999999999999999 is invalid. Should be an integer between 1 and 5."},
		{raw: "abc", reason: country.ReasonNotANumber, msg: "the parameter n: abc is not a number. Should be an integer between 1 and 5."},
		{raw: "2.5", reason: country.ReasonNotANumber, msg: "the parameter n: 2.5 is not a number. Should be an integer between 1 and 5."},
		{raw: "", reason: country.ReasonNotANumber, msg: "the parameter n:  is not a number. Should be an integer between 1 and 5."},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.TemperatureGraph(context.Background(), "Belgium", tt.raw)

			var argErr *country.InvalidArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.reason, argErr.Reason)
			assert.Equal(t, tt.msg, argErr.Error())

			assert.Zero(t, f.directory.calls)
			assert.Zero(t, f.weather.calls)
			assert.Zero(t, f.charts.calls)
		})
	}
}

func TestTemperatureGraphRequestsEightSlotsPerDay(t *testing.T) {
	for n := 1; n <= 5; n++ {
		f := newFixture()

		img, err := f.svc.TemperatureGraph(context.Background(), "Belgium", strconv.Itoa(n))
		require.NoError(t, err)

		assert.Equal(t, []byte("png"), img)
		assert.Equal(t, n*8, f.weather.gotCount)
	}
}

func TestTemperatureGraphBuildsLineChart(t *testing.T) {
	f := newFixture()

	_, err := f.svc.TemperatureGraph(context.Background(), "Belgium", "2")
	require.NoError(t, err)

	chart := f.charts.got
	assert.Equal(t, "line", chart.Type)
	assert.Equal(t, []string{"2024-05-01 12:00:00", "2024-05-01 15:00:00"}, chart.Data.Labels)
	require.Len(t, chart.Data.Datasets, 1)
	assert.Equal(t, "Temperature Forecast in Belgium", chart.Data.Datasets[0].Label)
	assert.Equal(t, []float64{14.1, 15.3}, chart.Data.Datasets[0].Data)
	assert.False(t, chart.Data.Datasets[0].Fill)
}

func TestTemperatureGraphForecastFailure(t *testing.T) {
	f := newFixture()
	f.weather.forecastEr = &country.UpstreamError{Service: "openweathermap", Status: http.StatusUnauthorized}

	_, err := f.svc.TemperatureGraph(context.Background(), "Belgium", "3")

	var upErr *country.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusUnauthorized, upErr.Status)
	assert.Zero(t, f.charts.calls)
}
