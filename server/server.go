// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package server exposes hop discovery over a small HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoptrace/hoptrace/log"
	"github.com/hoptrace/hoptrace/trace"
	"github.com/hoptrace/hoptrace/transport"
)

const shutdownGrace = 5 * time.Second

// Server is the HTTP server for the trace API.
type Server struct {
	tracer *trace.Tracer
}

// NewServer creates a server with an initialized Tracer.
func NewServer() *Server {
	return &Server{
		tracer: trace.NewTracer(),
	}
}

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Code    trace.ErrorCode `json:"code"`
	Message string          `json:"message"`
}

// TraceHandler handles GET /trace requests.
func (s *Server) TraceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params, err := parseTraceParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, &trace.TraceError{
			Code:    trace.ErrCodeInvalidRequest,
			Message: err.Error(),
			Err:     err,
		})
		return
	}

	res, err := s.tracer.Run(r.Context(), params)
	if err != nil {
		traceErr := trace.ClassifyError(err)
		writeError(w, statusForCode(traceErr.Code), traceErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Errorf("failed to encode response: %s", err)
	}
}

// parseTraceParams extracts and validates query parameters.
func parseTraceParams(r *http.Request) (trace.Params, error) {
	query := r.URL.Query()

	destination := query.Get("destination")
	if destination == "" {
		return trace.Params{}, fmt.Errorf("missing required parameter: destination")
	}

	params := trace.Params{
		Destination:           destination,
		Port:                  getIntParam(query, "port", transport.DefaultPort),
		Timeout:               time.Duration(getIntParam(query, "timeout", int(transport.DefaultTimeout.Milliseconds()))) * time.Millisecond,
		MaxHops:               getIntParam(query, "max-hops", 30),
		Nameserver:            getStringParam(query, "nameserver", ""),
		UseICMPReceiver:       getStringParam(query, "receiver", "udp") == "icmp",
		ReverseDns:            getBoolParam(query, "reverse-dns", false),
		CollectSourcePublicIP: getBoolParam(query, "source-public-ip", false),
		SkipPrivateHops:       getBoolParam(query, "skip-private-hops", false),
	}
	return params, nil
}

func statusForCode(code trace.ErrorCode) int {
	switch code {
	case trace.ErrCodeInvalidRequest, trace.ErrCodeDNS:
		return http.StatusBadRequest
	case trace.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, traceErr *trace.TraceError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Code: traceErr.Code, Message: traceErr.Message}); err != nil {
		log.Errorf("failed to encode error response: %s", err)
	}
}

// Start serves the API on addr until ctx is done, then drains in-flight
// requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/trace", s.TraceHandler)

	srv := &http.Server{Addr: addr, Handler: mux}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("starting HTTP server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
