package demand

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/demand-atlas/pkg/adapters"
	"github.com/de-tools/demand-atlas/pkg/models/api"
	"github.com/de-tools/demand-atlas/pkg/models/domain"
	"github.com/de-tools/demand-atlas/pkg/services/analysis"
	"github.com/de-tools/demand-atlas/pkg/services/timegrid"
	demandstore "github.com/de-tools/demand-atlas/pkg/store/duckdb/demand"
	"github.com/rs/zerolog"
)

type Handler struct {
	store demandstore.Store
}

func NewHandler(store demandstore.Store) *Handler {
	return &Handler{store: store}
}

// GetValidation reports grid completeness for the stored demand series.
func (h *Handler) GetValidation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	params, err := h.runParams(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	series, err := h.loadSeries(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	report := timegrid.Validate(series, params.Frequency)
	writeJSON(w, logger, adapters.MapValidationReportDomainToApi(report))
}

// GetForecast runs the configured forecast over the stored series and
// returns it with its accuracy scores.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	result, err := h.run(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, api.ForecastResponse{
		Method:   string(result.Params.Method),
		Forecast: adapters.MapSeriesDomainToApi(result.Forecast),
		Metrics:  adapters.MapAccuracyMetricsDomainToApi(result.Metrics),
	})
}

// GetSafetyStock returns the buffer recommendation at the requested
// service percentile.
func (h *Handler) GetSafetyStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	result, err := h.run(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, api.SafetyStockResponse{
		Percentile:  result.Params.Percentile,
		SafetyStock: result.SafetyStock,
	})
}

func (h *Handler) run(r *http.Request) (*analysis.Result, error) {
	params, err := h.runParams(r)
	if err != nil {
		return nil, err
	}
	series, err := h.loadSeries(r)
	if err != nil {
		return nil, err
	}
	return analysis.Run(r.Context(), series, params)
}

// loadSeries reads the stored series over the requested range, defaulting
// to everything the store holds.
func (h *Handler) loadSeries(r *http.Request) (domain.Series, error) {
	ctx := r.Context()

	start, end := time.Time{}, time.Time{}
	if s := r.URL.Query().Get("start"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, &badRequestError{msg: "invalid start: " + s}
		}
		start = ts
	}
	if s := r.URL.Query().Get("end"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, &badRequestError{msg: "invalid end: " + s}
		}
		end = ts
	}

	if start.IsZero() || end.IsZero() {
		stats, err := h.store.GetStats(ctx)
		if err != nil {
			return nil, err
		}
		if stats.RecordsCount == 0 {
			return domain.Series{}, nil
		}
		if start.IsZero() {
			start = *stats.FirstRecord
		}
		if end.IsZero() {
			end = stats.LastRecord.Add(time.Second)
		}
	}

	return h.store.GetSeries(ctx, start, end)
}

func (h *Handler) runParams(r *http.Request) (analysis.Params, error) {
	q := r.URL.Query()
	params := analysis.DefaultParams()

	if v := q.Get("freq"); v != "" {
		freq, err := domain.ParseFrequency(v)
		if err != nil {
			return params, err
		}
		params.Frequency = freq
	}
	if v := q.Get("fill"); v != "" {
		policy, err := timegrid.ParseFillPolicy(v)
		if err != nil {
			return params, err
		}
		params.FillPolicy = policy
	}
	if v := q.Get("method"); v != "" {
		method, err := analysis.ParseMethod(v)
		if err != nil {
			return params, err
		}
		params.Method = method
	}

	intParams := map[string]*int{
		"window":  &params.Window,
		"horizon": &params.Horizon,
		"period":  &params.SeasonalPeriod,
	}
	for name, dst := range intParams {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return params, &badRequestError{msg: "invalid " + name + ": " + v}
			}
			*dst = n
		}
	}

	floatParams := map[string]*float64{
		"alpha":      &params.Alpha,
		"percentile": &params.Percentile,
	}
	for name, dst := range floatParams {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return params, &badRequestError{msg: "invalid " + name + ": " + v}
			}
			*dst = f
		}
	}

	return params, nil
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var cfgErr *domain.ConfigError
	var reqErr *badRequestError
	status := http.StatusInternalServerError
	if errors.As(err, &cfgErr) || errors.As(err, &reqErr) {
		status = http.StatusBadRequest
	}

	logger.Error().Err(err).Int("status", status).Msg("demand request failed")
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
