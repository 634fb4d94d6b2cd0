package deals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/api"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/models/store"
	"github.com/de-tools/deal-atlas/pkg/services/analytics"
	"github.com/de-tools/deal-atlas/pkg/services/deals"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	args := m.Called(ctx)
	if d := args.Get(0); d != nil {
		return d.([]domain.Deal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAnalyzer) Historical(ctx context.Context, filters domain.HistoricalFilters) (domain.HistoricalAnalysis, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(domain.HistoricalAnalysis), args.Error(1)
}

func (m *mockAnalyzer) Forecast(ctx context.Context, req deals.ForecastRequest) (domain.ForecastResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ForecastResult), args.Error(1)
}

func (m *mockAnalyzer) Trends(ctx context.Context, filters domain.TrendFilters) (domain.TrendResult, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(domain.TrendResult), args.Error(1)
}

type mockSeeder struct {
	mock.Mock
}

func (m *mockSeeder) Seed(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newRequest(t *testing.T, method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return req.WithContext(logger.WithContext(req.Context()))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandler_Historical(t *testing.T) {
	analysis := domain.HistoricalAnalysis{
		Overall: domain.WinRateAnalysis{TotalDeals: 3, WonDeals: 2, LostDeals: 1, WinRate: 66.67},
		ByDealSize: map[domain.SizeCategory]domain.WinRateAnalysis{
			domain.SizeMedium: {TotalDeals: 3, WonDeals: 2, LostDeals: 1, WinRate: 66.67},
		},
	}

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		expected domain.HistoricalFilters
	}{
		{
			name:   "query parameters",
			method: http.MethodGet,
			target: "/analytics/historical?transportationMode=rail&salesRep=Jane&dealSizeCategory=Large&stage=closed_won&startDate=2024-01-01&endDate=2024-12-31",
			expected: domain.HistoricalFilters{
				DealFilter: domain.DealFilter{
					TransportationMode: "rail",
					SalesRep:           "Jane",
					DealSizeCategory:   "Large",
					StartDate:          "2024-01-01",
					EndDate:            "2024-12-31",
				},
				Stage: domain.StageClosedWon,
			},
		},
		{
			name:     "unknown size category dropped",
			method:   http.MethodGet,
			target:   "/analytics/historical?dealSizeCategory=Huge",
			expected: domain.HistoricalFilters{},
		},
		{
			name:   "json body",
			method: http.MethodPost,
			target: "/analytics/historical",
			body:   `{"filters":{"transportationMode":"ocean","stage":"closed_lost"}}`,
			expected: domain.HistoricalFilters{
				DealFilter: domain.DealFilter{TransportationMode: "ocean"},
				Stage:      domain.StageClosedLost,
			},
		},
		{
			name:     "empty body",
			method:   http.MethodPost,
			target:   "/analytics/historical",
			expected: domain.HistoricalFilters{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			analyzer.On("Historical", mock.Anything, tc.expected).Return(analysis, nil)
			h := NewHandler(analyzer, &mockSeeder{})

			rec := httptest.NewRecorder()
			h.Historical(rec, newRequest(t, tc.method, tc.target, tc.body))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decode[api.Response[api.HistoricalAnalysis]](t, rec)
			assert.True(t, resp.Success)
			assert.Equal(t, 66.67, resp.Data.Overall.WinRate)
			assert.Equal(t, 2, resp.Data.ByDealSize["Medium"].WonDeals)
			assert.Equal(t, []string{}, resp.Data.Insights)
			require.NotNil(t, resp.Filters)
			assert.Len(t, resp.Filters.Available.Stages, 6)
			assert.Equal(t, []string{"Small", "Medium", "Large", "Enterprise"}, resp.Filters.Available.DealSizeCategories)
			analyzer.AssertExpectations(t)
		})
	}
}

func TestHandler_Historical_InvalidDate(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("Historical", mock.Anything, mock.Anything).
		Return(domain.HistoricalAnalysis{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, "soon"))
	h := NewHandler(analyzer, &mockSeeder{})

	rec := httptest.NewRecorder()
	h.Historical(rec, newRequest(t, http.MethodGet, "/analytics/historical?startDate=soon", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[api.ErrorResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Bad request", resp.Error)
	assert.Contains(t, resp.Message, "invalid date")
}

func TestHandler_Forecast(t *testing.T) {
	quota := 250000.0
	result := domain.ForecastResult{
		Forecast: []domain.RevenueForecast{
			{Month: "2025-03", PredictedRevenue: 66000, Confidence: 0.3, DealCount: 1, Trend: domain.TrendStable},
			{Month: "2025-04", Trend: domain.TrendStable},
			{Month: "2025-05", Trend: domain.TrendStable},
		},
		Insights: domain.ForecastInsights{TotalPredictedRevenue: 66000, QuotaTarget: &quota},
	}

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		expected deals.ForecastRequest
	}{
		{
			name:   "query parameters",
			method: http.MethodGet,
			target: "/forecasting/revenue?monthsToForecast=3&quotaTarget=250000&transportationMode=air",
			expected: deals.ForecastRequest{
				Months:      3,
				QuotaTarget: &quota,
				Filters:     domain.ForecastFilters{DealFilter: domain.DealFilter{TransportationMode: "air"}},
			},
		},
		{
			name:   "json body",
			method: http.MethodPost,
			target: "/forecasting/revenue",
			body:   `{"monthsToForecast":3,"quotaTarget":250000,"filters":{"transportationMode":"air"}}`,
			expected: deals.ForecastRequest{
				Months:      3,
				QuotaTarget: &quota,
				Filters:     domain.ForecastFilters{DealFilter: domain.DealFilter{TransportationMode: "air"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			analyzer.On("Forecast", mock.Anything, tc.expected).Return(result, nil)
			h := NewHandler(analyzer, &mockSeeder{})

			rec := httptest.NewRecorder()
			h.Forecast(rec, newRequest(t, tc.method, tc.target, tc.body))

			require.Equal(t, http.StatusOK, rec.Code)
			resp := decode[api.Response[api.ForecastResult]](t, rec)
			assert.True(t, resp.Success)
			require.Len(t, resp.Data.Forecast, 3)
			assert.Equal(t, "2025-03", resp.Data.Forecast[0].Month)
			assert.Equal(t, "stable", resp.Data.Forecast[0].Trend)
			require.NotNil(t, resp.Filters)
			assert.Equal(t, 3, resp.Filters.Available.MonthsToForecast)
			require.NotNil(t, resp.Filters.Available.QuotaTarget)
			assert.Equal(t, quota, *resp.Filters.Available.QuotaTarget)
			analyzer.AssertExpectations(t)
		})
	}
}

func TestHandler_Forecast_BadRequest(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "months not a number", method: http.MethodGet, target: "/forecasting/revenue?monthsToForecast=six"},
		{name: "quota not a number", method: http.MethodGet, target: "/forecasting/revenue?quotaTarget=lots"},
		{name: "malformed body", method: http.MethodPost, target: "/forecasting/revenue", body: `{"monthsToForecast":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			h := NewHandler(analyzer, &mockSeeder{})

			rec := httptest.NewRecorder()
			h.Forecast(rec, newRequest(t, tc.method, tc.target, tc.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			analyzer.AssertNotCalled(t, "Forecast", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Forecast_NegativeHorizon(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("Forecast", mock.Anything, deals.ForecastRequest{Months: -2}).
		Return(domain.ForecastResult{}, analytics.ErrInvalidHorizon)
	h := NewHandler(analyzer, &mockSeeder{})

	rec := httptest.NewRecorder()
	h.Forecast(rec, newRequest(t, http.MethodGet, "/forecasting/revenue?monthsToForecast=-2", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[api.ErrorResponse](t, rec)
	assert.Equal(t, analytics.ErrInvalidHorizon.Error(), resp.Message)
}

type emptyStore struct{}

func (emptyStore) List(context.Context) ([]store.Deal, error) {
	return nil, nil
}

func TestHandler_Forecast_HorizonTooLong(t *testing.T) {
	svc := deals.NewService(emptyStore{}, deals.WithClock(func() time.Time {
		return time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	}))
	h := NewHandler(svc, &mockSeeder{})

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "query", method: http.MethodGet, target: "/forecasting/revenue?monthsToForecast=50000000"},
		{name: "query beyond int size", method: http.MethodGet, target: "/forecasting/revenue?monthsToForecast=1125899906842624"},
		{name: "json body", method: http.MethodPost, target: "/forecasting/revenue", body: `{"monthsToForecast":121}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Forecast(rec, newRequest(t, tc.method, tc.target, tc.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode[api.ErrorResponse](t, rec)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Message, "at most 120 months")
		})
	}

	rec := httptest.NewRecorder()
	h.Forecast(rec, newRequest(t, http.MethodGet, "/forecasting/revenue?monthsToForecast=120", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[api.Response[api.ForecastResult]](t, rec)
	assert.Len(t, resp.Data.Forecast, 120)
}

func TestHandler_Trends(t *testing.T) {
	stalling := true
	notStalling := false
	result := domain.TrendResult{
		Trends: []domain.DealTrend{{
			DealID:       "D-1",
			CurrentStage: domain.StageProposal,
			RiskScore:    85,
			RiskLevel:    domain.RiskCritical,
			Priority:     domain.PriorityUrgent,
			IsStalling:   true,
		}},
		Insights: domain.TrendInsights{
			TotalDeals:       1,
			DealsByRiskLevel: map[domain.RiskLevel]int{domain.RiskCritical: 1},
			DealsByPriority:  map[domain.Priority]int{domain.PriorityUrgent: 1},
		},
	}

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		expected domain.TrendFilters
	}{
		{
			name:   "query parameters",
			method: http.MethodGet,
			target: "/trends?riskLevel=critical&priority=urgent&isStalling=true&salesRep=Jane",
			expected: domain.TrendFilters{
				DealFilter: domain.DealFilter{SalesRep: "Jane"},
				RiskLevel:  domain.RiskCritical,
				Priority:   domain.PriorityUrgent,
				IsStalling: &stalling,
			},
		},
		{
			name:     "isStalling other than true",
			method:   http.MethodGet,
			target:   "/trends?isStalling=yes",
			expected: domain.TrendFilters{IsStalling: &notStalling},
		},
		{
			name:     "no isStalling",
			method:   http.MethodGet,
			target:   "/trends",
			expected: domain.TrendFilters{},
		},
		{
			name:   "json body",
			method: http.MethodPost,
			target: "/trends",
			body:   `{"filters":{"riskLevel":"critical","isStalling":false}}`,
			expected: domain.TrendFilters{
				RiskLevel:  domain.RiskCritical,
				IsStalling: &notStalling,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			analyzer.On("Trends", mock.Anything, tc.expected).Return(result, nil)
			h := NewHandler(analyzer, &mockSeeder{})

			rec := httptest.NewRecorder()
			h.Trends(rec, newRequest(t, tc.method, tc.target, tc.body))

			require.Equal(t, http.StatusOK, rec.Code)
			resp := decode[api.Response[api.TrendResult]](t, rec)
			assert.True(t, resp.Success)
			require.Len(t, resp.Data.Trends, 1)
			assert.Equal(t, "D-1", resp.Data.Trends[0].DealID)
			assert.Equal(t, "critical", resp.Data.Trends[0].RiskLevel)
			assert.Equal(t, 1, resp.Data.Insights.DealsByPriority["urgent"])
			require.NotNil(t, resp.Filters)
			assert.Len(t, resp.Filters.Available.RiskLevels, 4)
			analyzer.AssertExpectations(t)
		})
	}
}

func TestHandler_StoreFailure(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("Trends", mock.Anything, mock.Anything).
		Return(domain.TrendResult{}, errors.New("failed to load deals: disk full"))
	h := NewHandler(analyzer, &mockSeeder{})

	rec := httptest.NewRecorder()
	h.Trends(rec, newRequest(t, http.MethodGet, "/trends", ""))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[api.ErrorResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error", resp.Error)
	assert.Equal(t, "failed to load deals: disk full", resp.Message)
}

func TestHandler_ListDeals(t *testing.T) {
	analyzer := &mockAnalyzer{}
	analyzer.On("ListDeals", mock.Anything).Return([]domain.Deal{{
		ID:                 1,
		DealID:             "D-1",
		Stage:              domain.StageProspect,
		Value:              12000,
		ExpectedCloseDate:  "2025-04-01T00:00:00Z",
		TransportationMode: "trucking",
	}}, nil)
	h := NewHandler(analyzer, &mockSeeder{})

	rec := httptest.NewRecorder()
	h.ListDeals(rec, newRequest(t, http.MethodGet, "/deals", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[api.Response[[]api.Deal]](t, rec)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "D-1", resp.Data[0].DealID)
	assert.Equal(t, "prospect", resp.Data[0].Stage)
	assert.Nil(t, resp.Filters)
}

func TestHandler_Seed(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		seeder := &mockSeeder{}
		seeder.On("Seed", mock.Anything).Return(41, nil)
		h := NewHandler(&mockAnalyzer{}, seeder)

		rec := httptest.NewRecorder()
		h.Seed(rec, newRequest(t, http.MethodPost, "/seed", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[api.Response[api.SeedResult]](t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, 41, resp.Data.Count)
		assert.Equal(t, "Database seeded successfully", resp.Data.Message)
	})

	t.Run("failure", func(t *testing.T) {
		seeder := &mockSeeder{}
		seeder.On("Seed", mock.Anything).Return(0, errors.New("replace deals: locked"))
		h := NewHandler(&mockAnalyzer{}, seeder)

		rec := httptest.NewRecorder()
		h.Seed(rec, newRequest(t, http.MethodPost, "/seed", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
