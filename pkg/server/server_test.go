package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/demand-atlas/pkg/models/api"
	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDemandStore struct {
	mock.Mock
}

func (m *mockDemandStore) Add(ctx context.Context, records []store.DemandRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *mockDemandStore) GetRecords(ctx context.Context, startTime, endTime time.Time) ([]store.DemandRecord, error) {
	args := m.Called(ctx, startTime, endTime)
	return args.Get(0).([]store.DemandRecord), args.Error(1)
}

func (m *mockDemandStore) GetSeries(ctx context.Context, startTime, endTime time.Time) (domain.Series, error) {
	args := m.Called(ctx, startTime, endTime)
	return args.Get(0).(domain.Series), args.Error(1)
}

func (m *mockDemandStore) GetStats(ctx context.Context) (*store.DemandStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*store.DemandStats), args.Error(1)
}

func testSeries(start time.Time, n int) domain.Series {
	s := make(domain.Series, 0, n)
	for i := 0; i < n; i++ {
		s = append(s, domain.TimePoint{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Value:     float64(10 * (i + 1)),
		})
	}
	return s
}

func setupServer(t *testing.T) (*mockDemandStore, *httptest.Server) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	mockStore := new(mockDemandStore)

	router := ConfigureRouter(Config{
		Addr: ":8080",
		Dependencies: Dependencies{
			DemandStore: mockStore,
			Logger:      logger,
		},
	})
	testServer := httptest.NewServer(router)
	t.Cleanup(testServer.Close)

	return mockStore, testServer
}

func TestWebAPI_Validation(t *testing.T) {
	mockStore, testServer := setupServer(t)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	first, last := start, start.Add(4*time.Hour)
	mockStore.On("GetStats", mock.Anything).Return(&store.DemandStats{
		RecordsCount: 5,
		FirstRecord:  &first,
		LastRecord:   &last,
	}, nil)
	mockStore.On("GetSeries", mock.Anything, mock.Anything, mock.Anything).
		Return(testSeries(start, 5), nil)

	resp, err := http.Get(testServer.URL + "/api/v1/demand/validation?freq=hourly")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report api.ValidationReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 5, report.ObservedCount)
	assert.Equal(t, 100.0, report.Completeness)
	mockStore.AssertExpectations(t)
}

func TestWebAPI_Forecast(t *testing.T) {
	mockStore, testServer := setupServer(t)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	mockStore.On("GetSeries", mock.Anything, start, end).
		Return(testSeries(start, 4), nil)

	url := testServer.URL + "/api/v1/demand/forecast?method=moving_average&window=2&horizon=1" +
		"&start=" + start.Format(time.RFC3339) + "&end=" + end.Format(time.RFC3339)
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fc api.ForecastResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fc))
	assert.Equal(t, "moving_average", fc.Method)
	require.Len(t, fc.Forecast, 4)
	assert.Nil(t, fc.Forecast[0].Value)
	require.NotNil(t, fc.Forecast[2].Value)
	assert.Equal(t, 15.0, *fc.Forecast[2].Value)
}

func TestWebAPI_SafetyStock(t *testing.T) {
	mockStore, testServer := setupServer(t)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(6 * time.Hour)
	mockStore.On("GetSeries", mock.Anything, start, end).
		Return(testSeries(start, 6), nil)

	url := testServer.URL + "/api/v1/demand/safety-stock?percentile=95" +
		"&start=" + start.Format(time.RFC3339) + "&end=" + end.Format(time.RFC3339)
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ss api.SafetyStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ss))
	assert.Equal(t, 95.0, ss.Percentile)
	assert.Greater(t, ss.SafetyStock, 0.0)
}

func TestWebAPI_UnknownMethodIsBadRequest(t *testing.T) {
	_, testServer := setupServer(t)

	resp, err := http.Get(testServer.URL + "/api/v1/demand/forecast?method=arima")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebAPI_EmptyStore(t *testing.T) {
	mockStore, testServer := setupServer(t)

	mockStore.On("GetStats", mock.Anything).Return(&store.DemandStats{}, nil)

	resp, err := http.Get(testServer.URL + "/api/v1/demand/safety-stock")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ss api.SafetyStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ss))
	assert.Equal(t, 0.0, ss.SafetyStock)
}
