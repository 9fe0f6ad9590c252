// Package server exposes the calculator over HTTP: a small JSON API plus the
// embedded single-page UI that renders the charts and the viability banner.
package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/iwvelando/npv-calculator/internal/config"
	"github.com/iwvelando/npv-calculator/internal/npv"
	"github.com/iwvelando/npv-calculator/pkg/cashflow"
	"github.com/iwvelando/npv-calculator/pkg/constants"
	"github.com/iwvelando/npv-calculator/pkg/output"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	defaults    config.DefaultsConfig

	// Guards the shared random source; requests are otherwise stateless.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// calculation API. The defaults pre-populate the form on first load.
func NewHandler(logger *zap.Logger, defaults config.DefaultsConfig, maxBodySize int64, version string) http.Handler {
	return newHandler(logger, defaults, maxBodySize, version,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newHandler(logger *zap.Logger, defaults config.DefaultsConfig, maxBodySize int64, version string, rng *rand.Rand) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		defaults:    defaults,
		rng:         rng,
	}

	mux := http.NewServeMux()

	// Calculation API endpoint
	mux.HandleFunc("/api/npv", h.handleCalculate)

	// Random cash flows for the reset action
	mux.HandleFunc("/api/random-cash-flows", h.handleRandomCashFlows)

	// Initial form values for the UI
	mux.HandleFunc("/api/defaults", h.handleDefaults)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type calculateRequest struct {
	DiscountRate      *float64        `json:"discountRate"`
	InitialInvestment *float64        `json:"initialInvestment"`
	CashFlows         json.RawMessage `json:"cashFlows"`
}

type calculateResponse struct {
	CashFlows           []float64 `json:"cashFlows"`
	DiscountedCashFlows []float64 `json:"discountedCashFlows"`
	CumulativeValues    []float64 `json:"cumulativeValues"`
	NPV                 float64   `json:"npv"`
	Viable              bool      `json:"viable"`
	Message             string    `json:"message"`
	Duration            string    `json:"duration"`
}

type randomCashFlowsRequest struct {
	Count int `json:"count"`
}

type randomCashFlowsResponse struct {
	CashFlows []int  `json:"cashFlows"`
	Value     string `json:"value"`
}

type defaultsResponse struct {
	DiscountRate      float64 `json:"discountRate"`
	InitialInvestment float64 `json:"initialInvestment"`
	CashFlows         string  `json:"cashFlows"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	requestID := uuid.NewString()
	op := "server.handleCalculate"

	body, ok := h.readBody(w, r, op, requestID)
	if !ok {
		return
	}

	var req calculateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op, requestID)
		return
	}

	in, err := buildInput(req)
	if err != nil {
		h.respondValidationError(w, err, op, requestID)
		return
	}

	result := npv.Compute(*in)
	elapsed := time.Since(start)

	h.logger.Info("npv computed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("periods", len(in.CashFlows)),
		zap.Float64("npv", result.NPV),
		zap.Bool("viable", result.Viable),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		CashFlows:           in.CashFlows,
		DiscountedCashFlows: result.DiscountedCashFlows,
		CumulativeValues:    result.CumulativeValues,
		NPV:                 result.NPV,
		Viable:              result.Viable,
		Message:             output.Verdict(result),
		Duration:            elapsed.String(),
	})
}

// buildInput maps a decoded request onto a validated Input, preserving the
// rule order (rate, investment, cash flows) across both field shapes.
func buildInput(req calculateRequest) (*npv.Input, error) {
	if req.DiscountRate == nil {
		return nil, &npv.ValidationError{Code: npv.CodeInvalidDiscountRate, Message: npv.MsgInvalidDiscountRate}
	}
	if err := npv.ValidateRate(*req.DiscountRate); err != nil {
		return nil, err
	}

	if req.InitialInvestment == nil {
		return nil, &npv.ValidationError{Code: npv.CodeInvalidInvestment, Message: npv.MsgInvalidInvestment}
	}
	if err := npv.ValidateInvestment(*req.InitialInvestment); err != nil {
		return nil, err
	}

	flows, err := decodeCashFlows(req.CashFlows)
	if err != nil {
		return nil, err
	}
	if err := npv.ValidateFlows(flows); err != nil {
		return nil, err
	}

	return &npv.Input{
		DiscountRatePercent: *req.DiscountRate,
		InitialInvestment:   *req.InitialInvestment,
		CashFlows:           flows,
	}, nil
}

// decodeCashFlows accepts either the raw form string ("1000, 1500") or an
// already-numeric JSON array.
func decodeCashFlows(raw json.RawMessage) ([]float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &npv.ValidationError{Code: npv.CodeInvalidCashFlows, Message: npv.MsgEmptyCashFlows}
	}

	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return nil, &npv.ValidationError{Code: npv.CodeInvalidCashFlows, Message: npv.MsgInvalidCashFlows}
		}
		return npv.ParseCashFlows(value)
	}

	var flows []float64
	if err := json.Unmarshal(trimmed, &flows); err != nil {
		return nil, &npv.ValidationError{Code: npv.CodeInvalidCashFlows, Message: npv.MsgInvalidCashFlows}
	}
	return flows, nil
}

func (h *handler) handleRandomCashFlows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	op := "server.handleRandomCashFlows"

	body, ok := h.readBody(w, r, op, requestID)
	if !ok {
		return
	}

	req := randomCashFlowsRequest{Count: h.cashFlowCount()}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op, requestID)
			return
		}
	}
	if req.Count <= 0 {
		req.Count = h.cashFlowCount()
	}
	if req.Count > constants.MaxRandomCashFlowCount {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("count exceeds limit of %d", constants.MaxRandomCashFlowCount), op, requestID)
		return
	}

	h.rngMu.Lock()
	flows := cashflow.Random(h.rng, req.Count)
	h.rngMu.Unlock()

	h.logger.Debug("generated random cash flows",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("count", len(flows)),
	)

	h.writeJSON(w, http.StatusOK, randomCashFlowsResponse{
		CashFlows: flows,
		Value:     cashflow.Join(flows),
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.rngMu.Lock()
	flows := cashflow.Random(h.rng, h.cashFlowCount())
	h.rngMu.Unlock()

	h.writeJSON(w, http.StatusOK, defaultsResponse{
		DiscountRate:      h.defaults.DiscountRatePercent,
		InitialInvestment: h.defaults.InitialInvestment,
		CashFlows:         cashflow.Join(flows),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) cashFlowCount() int {
	if h.defaults.CashFlowCount > 0 {
		return h.defaults.CashFlowCount
	}
	return constants.DefaultCashFlowCount
}

// readBody drains the request body under the configured limit. The limit
// error has to be caught on the read itself: a JSON decoder layered on top
// reports plain EOF and loses the 413.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op, requestID string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op, requestID)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op, requestID)
		return nil, false
	}
	return body, true
}

// respondValidationError surfaces input failures verbatim; anything else is
// an internal decoding problem and reported generically.
func (h *handler) respondValidationError(w http.ResponseWriter, err error, op, requestID string) {
	var vErr *npv.ValidationError
	if errors.As(err, &vErr) {
		h.logger.Info("input rejected",
			zap.String("op", op),
			zap.String("requestId", requestID),
			zap.String("code", vErr.Code),
		)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": vErr.Message,
			"code":  vErr.Code,
		})
		return
	}
	h.respondError(w, http.StatusBadRequest, err.Error(), op, requestID)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op, requestID string) {
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
