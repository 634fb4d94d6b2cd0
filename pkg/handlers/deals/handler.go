package deals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/api"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/services/analytics"
	"github.com/de-tools/deal-atlas/pkg/services/deals"
	"github.com/rs/zerolog"
)

var errBadRequest = errors.New("bad request")

type Seeder interface {
	Seed(ctx context.Context) (int, error)
}

type Handler struct {
	analyzer deals.Analyzer
	seeder   Seeder
}

func NewHandler(analyzer deals.Analyzer, seeder Seeder) *Handler {
	return &Handler{
		analyzer: analyzer,
		seeder:   seeder,
	}
}

func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.analyzer.ListDeals(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	response := make([]api.Deal, 0, len(records))
	for _, d := range records {
		response = append(response, adapters.MapDealDomainToApi(d))
	}
	writeJSON(ctx, w, http.StatusOK, api.Response[[]api.Deal]{Success: true, Data: response})
}

func (h *Handler) Historical(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters api.HistoricalFilters
	if r.Method == http.MethodPost {
		var req api.HistoricalRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		filters = req.Filters
	} else {
		q := r.URL.Query()
		filters = api.HistoricalFilters{
			DealFilter: dealFilterFromQuery(q),
			Stage:      q.Get("stage"),
		}
		if _, ok := domain.ParseSizeCategory(filters.DealSizeCategory); !ok {
			filters.DealSizeCategory = ""
		}
	}

	result, err := h.analyzer.Historical(ctx, adapters.MapHistoricalFiltersApiToDomain(filters))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.Response[api.HistoricalAnalysis]{
		Success: true,
		Data:    adapters.MapHistoricalDomainToApi(result),
		Filters: &api.Filters{
			Applied:   filters,
			Available: adapters.AvailableHistoricalFilters(),
		},
	})
}

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ForecastRequest
	if r.Method == http.MethodPost {
		if err := decodeBody(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	} else {
		q := r.URL.Query()
		req.Filters = dealFilterFromQuery(q)

		var err error
		if req.MonthsToForecast, err = intParam(q, "monthsToForecast"); err != nil {
			writeError(ctx, w, err)
			return
		}
		if req.QuotaTarget, err = floatParam(q, "quotaTarget"); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.analyzer.Forecast(ctx, deals.ForecastRequest{
		Months:      req.MonthsToForecast,
		QuotaTarget: req.QuotaTarget,
		Filters:     domain.ForecastFilters{DealFilter: adapters.MapDealFilterApiToDomain(req.Filters)},
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.Response[api.ForecastResult]{
		Success: true,
		Data:    adapters.MapForecastDomainToApi(result),
		Filters: &api.Filters{
			Applied:   req.Filters,
			Available: adapters.AvailableForecastFilters(len(result.Forecast), req.QuotaTarget),
		},
	})
}

func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filters api.TrendFilters
	if r.Method == http.MethodPost {
		var req api.TrendRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		filters = req.Filters
	} else {
		q := r.URL.Query()
		filters = api.TrendFilters{
			DealFilter: dealFilterFromQuery(q),
			RiskLevel:  q.Get("riskLevel"),
			Priority:   q.Get("priority"),
		}
		if q.Has("isStalling") {
			stalling := q.Get("isStalling") == "true"
			filters.IsStalling = &stalling
		}
	}

	result, err := h.analyzer.Trends(ctx, adapters.MapTrendFiltersApiToDomain(filters))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.Response[api.TrendResult]{
		Success: true,
		Data:    adapters.MapTrendsDomainToApi(result),
		Filters: &api.Filters{
			Applied:   filters,
			Available: adapters.AvailableTrendFilters(),
		},
	})
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.seeder.Seed(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, api.Response[api.SeedResult]{
		Success: true,
		Data: api.SeedResult{
			Message: "Database seeded successfully",
			Count:   count,
		},
	})
}

func dealFilterFromQuery(q url.Values) api.DealFilter {
	return api.DealFilter{
		TransportationMode: q.Get("transportationMode"),
		SalesRep:           q.Get("salesRep"),
		DealSizeCategory:   q.Get("dealSizeCategory"),
		StartDate:          q.Get("startDate"),
		EndDate:            q.Get("endDate"),
	}
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return v, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
	}
	return &v, nil
}

// decodeBody treats an empty body as a request without filters.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, analytics.ErrInvalidHorizon):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	label := "Internal server error"
	if status == http.StatusBadRequest {
		label = "Bad request"
	}

	zerolog.Ctx(ctx).Error().
		Err(err).
		Int("status", status).
		Msg("request failed")

	writeJSON(ctx, w, status, api.ErrorResponse{
		Success: false,
		Error:   label,
		Message: err.Error(),
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
