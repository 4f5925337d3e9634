// Package server exposes a small HTTP façade over the quote and explain
// engines for UI consumption. The CLI envelope is not used here; responses
// follow the {ok, ...} contract the web frontend expects.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/swapsage/swapsage-cli/internal/id"
	"github.com/swapsage/swapsage-cli/internal/providers"
	"github.com/swapsage/swapsage-cli/internal/routes"
	"github.com/swapsage/swapsage-cli/internal/version"
)

const (
	defaultChainID  = int64(1)
	defaultDecimals = 18

	slippageHintMediumBps = 50
	slippageHintHighBps   = 200
)

type Server struct {
	agg    providers.Aggregator
	logger *logrus.Logger
}

func New(agg providers.Aggregator, logger *logrus.Logger) *Server {
	return &Server{agg: agg, logger: logger}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/quote", s.handleQuote).Methods(http.MethodGet)
	r.HandleFunc("/api/explain", s.handleExplain).Methods(http.MethodGet)
	r.Use(s.requestLogging)
	return r
}

func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.WithField("addr", addr).Info("http facade listening")
	return srv.ListenAndServe()
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"path":       r.URL.Path,
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("request served")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "version": version.CLIVersion})
}

// handleQuote answers {ok, data, risk:{price_impact_bps, slippage}} for a
// src/dst/amount triple. Amount arrives in human units; decimals defaults
// to 18.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	src := q.Get("src")
	dst := q.Get("dst")
	amount := q.Get("amount")
	if src == "" || dst == "" || amount == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "missing src/dst/amount"})
		return
	}
	decimals := defaultDecimals
	if raw := q.Get("decimals"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 36 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid decimals"})
			return
		}
		decimals = parsed
	}
	chainID := defaultChainID
	if raw := q.Get("chain"); raw != "" {
		chain, err := id.ParseChain(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "unknown chain"})
			return
		}
		chainID = chain.ChainID
	}

	baseUnits, err := id.BaseUnits(amount, decimals)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid amount"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	quote, err := s.agg.Quote(ctx, providers.QuoteRequest{
		ChainID:         chainID,
		Src:             src,
		Dst:             dst,
		AmountBaseUnits: baseUnits,
	})
	if err != nil {
		s.logger.WithError(err).Warn("quote request failed")
		writeJSON(w, http.StatusBadGateway, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	impactBps := routes.EstimateImpact(quote.FromAmount, quote.ToAmount) * 100
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"data": quote,
		"risk": map[string]any{
			"price_impact_bps": impactBps,
			"slippage":         slippageHint(impactBps),
		},
	})
}

func slippageHint(impactBps float64) string {
	switch {
	case impactBps < slippageHintMediumBps:
		return "low"
	case impactBps < slippageHintHighBps:
		return "medium"
	default:
		return "high"
	}
}

// handleExplain returns a short plain-English explanation for a route
// summary and risk figure. Deterministic template; the richer model-backed
// explanation lives behind the analyze command.
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	route := q.Get("route_summary")
	if route == "" {
		route = "best route"
	}
	risk := q.Get("risk")
	if risk == "" {
		risk = "unknown"
	}
	explanation := "SwapSage recommends this route because it balances liquidity depth and gas cost. " +
		"Risk level: " + risk + ". Route summary: " + route + "."

	s.logger.WithFields(logrus.Fields{
		"src":  orDefault(q.Get("src_symbol"), "SRC"),
		"dst":  orDefault(q.Get("dst_symbol"), "DST"),
		"risk": risk,
	}).Info("explanation requested")

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "explanation": explanation})
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
