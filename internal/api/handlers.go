package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ponchik009/credit-calc/internal/calculations"
	"github.com/ponchik009/credit-calc/internal/config"
	"github.com/ponchik009/credit-calc/internal/dates"
	"github.com/ponchik009/credit-calc/internal/dispatch"
	"github.com/ponchik009/credit-calc/internal/storage/sqlite"
	"github.com/ponchik009/credit-calc/internal/tools"
	"github.com/ponchik009/credit-calc/internal/validators"
)

// SettingsStore хранилище пользовательских параметров кредита
type SettingsStore interface {
	SaveOptions(ctx context.Context, options calculations.CreditOptions) error
	LoadOptions(ctx context.Context) (calculations.CreditOptions, error)
	PutEarlyPayment(ctx context.Context, p calculations.EarlyPayment) error
	DeleteEarlyPayment(ctx context.Context, date civil.Date) error
	ListEarlyPayments(ctx context.Context) ([]calculations.EarlyPayment, error)
}

// Handler обработчики HTTP API
type Handler struct {
	cfg      *config.Config
	store    SettingsStore
	calc     *dispatch.Calculator
	tools    map[string]tools.ToolHandler
	logger   *zap.Logger
	validate *validator.Validate
}

// NewHandler создает обработчики
func NewHandler(cfg *config.Config, store SettingsStore, calc *dispatch.Calculator, toolset map[string]tools.ToolHandler, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		calc:     calc,
		tools:    toolset,
		logger:   logger,
		validate: validator.New(),
	}
}

// Health проверка живости
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Calculate рассчитывает график по параметрам из тела запроса
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !h.decode(w, r, &req) {
		return
	}

	options, err := req.toOptions()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid credit options", err)
		return
	}
	for _, item := range req.EarlyPayments {
		p, err := item.toEarlyPayment()
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid early payment", err)
			return
		}
		options.EarlyPayments.Add(p)
	}

	h.respondSummary(w, r, options, req.IncludeSchedule)
}

// GetOptions возвращает сохраненные параметры кредита
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.store.LoadOptions(r.Context())
	if err != nil {
		h.storeError(w, "failed to load credit options", err)
		return
	}
	writeJSON(w, http.StatusOK, toOptionsResponse(options))
}

// PutOptions сохраняет параметры кредита
func (h *Handler) PutOptions(w http.ResponseWriter, r *http.Request) {
	var req OptionsRequest
	if !h.decode(w, r, &req) {
		return
	}

	options, err := req.toOptions()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid credit options", err)
		return
	}
	if err := validators.CheckCreditOptions(h.cfg, options); err != nil {
		writeError(w, http.StatusBadRequest, "invalid credit options", err)
		return
	}

	if err := h.store.SaveOptions(r.Context(), options); err != nil {
		h.storeError(w, "failed to save credit options", err)
		return
	}
	writeJSON(w, http.StatusOK, toOptionsResponse(options))
}

// ListEarlyPayments возвращает сохраненные досрочные платежи
func (h *Handler) ListEarlyPayments(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListEarlyPayments(r.Context())
	if err != nil {
		h.storeError(w, "failed to list early payments", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// PutEarlyPayment добавляет досрочный платеж; платеж на ту же дату заменяется
func (h *Handler) PutEarlyPayment(w http.ResponseWriter, r *http.Request) {
	var req EarlyPaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := req.toEarlyPayment()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid early payment", err)
		return
	}

	var start civil.Date
	if options, err := h.store.LoadOptions(r.Context()); err == nil {
		start = options.StartDate
	} else if !errors.Is(err, sqlite.ErrNotFound) {
		h.storeError(w, "failed to load credit options", err)
		return
	}
	if err := validators.CheckEarlyPayment(h.cfg, start, p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid early payment", err)
		return
	}

	if err := h.store.PutEarlyPayment(r.Context(), p); err != nil {
		h.storeError(w, "failed to save early payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// DeleteEarlyPayment удаляет досрочный платеж на дату
func (h *Handler) DeleteEarlyPayment(w http.ResponseWriter, r *http.Request) {
	date, err := dates.Parse(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	if err := h.store.DeleteEarlyPayment(r.Context(), date); err != nil {
		h.storeError(w, "failed to delete early payment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary рассчитывает график по сохраненным параметрам
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	options, err := h.store.LoadOptions(r.Context())
	if err != nil {
		h.storeError(w, "failed to load credit options", err)
		return
	}
	h.respondSummary(w, r, options, r.URL.Query().Get("schedule") == "true")
}

// CallTool вызывает инструмент по имени с параметрами из тела запроса
func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tool, ok := h.tools[name]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown tool", nil)
		return
	}

	var params map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := tool(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusBadRequest, "tool call failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) respondSummary(w http.ResponseWriter, r *http.Request, options calculations.CreditOptions, includeSchedule bool) {
	if err := validators.CheckCreditOptions(h.cfg, options); err != nil {
		writeError(w, http.StatusBadRequest, "invalid credit options", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.CalculationTimeout)
	defer cancel()

	summary, err := h.calc.Calculate(ctx, options)
	switch {
	case errors.Is(err, calculations.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid credit options", err)
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "calculation timed out", err)
		return
	case err != nil:
		h.logger.Error("calculation failed", zap.String("op", "api.respondSummary"), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "calculation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary, includeSchedule))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err)
		return false
	}
	return true
}

func (h *Handler) storeError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, message, err)
		return
	}
	h.logger.Error(message, zap.Error(err))
	writeError(w, http.StatusInternalServerError, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
