package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/etnz/tracker"
)

// reportResponse is a report identified for the client logs.
type reportResponse struct {
	ID string `json:"id"`
	*tracker.Report
}

type holdingsResponse struct {
	ID string `json:"id"`
	tracker.HoldingPage
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.analyze(w, r)
	if !ok {
		return
	}
	s.respond(w, r, http.StatusOK, reportResponse{ID: uuid.NewString(), Report: report})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	query, err := parseHoldingQuery(r.URL.Query(), s.cfg.PageSize)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	report, ok := s.analyze(w, r)
	if !ok {
		return
	}
	s.respond(w, r, http.StatusOK, holdingsResponse{ID: uuid.NewString(), HoldingPage: query.Apply(report.Holdings)})
}

// analyze reads and analyzes the request ledger. On failure the error
// response is already written.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) (*tracker.Report, bool) {
	rng, err := parseRange(r.URL.Query())
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	text, err := readLedger(w, r, s.cfg.MaxUploadBytes)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.fail(w, r, status, err)
		return nil, false
	}

	reqID := middleware.GetReqID(r.Context())
	parser := tracker.Parser{
		Currency: s.cfg.Currency,
		OnSkip: func(row, fields, want int) {
			s.log.Debug().Str("request_id", reqID).Int("row", row).Int("fields", fields).Int("want", want).Msg("skipped malformed row")
		},
	}
	report, err := parser.Analyze(text, rng)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	return report, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("request rejected")
	s.respond(w, r, status, errorResponse{Error: err.Error()})
}

// respond encodes v as JSON, or as MessagePack when the client accepts it.
//
// MessagePack is transcoded from the JSON encoding so that both formats share
// the same field names and number representation.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot encode response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "application/msgpack" {
		packed, err := transcode(data)
		if err == nil {
			w.Header().Set("Content-Type", "application/msgpack")
			w.WriteHeader(status)
			_, _ = w.Write(packed)
			return
		}
		s.log.Error().Err(err).Msg("cannot encode msgpack response")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// transcode converts a JSON document into MessagePack.
//
// Numbers become integers when they are whole, floats when the float64
// reads back as the same decimal, and decimal strings otherwise, so that
// amounts stay exact.
func transcode(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return msgpack.Marshal(exactNumbers(generic))
}

func exactNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = exactNumbers(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = exactNumbers(e)
		}
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		exact, err := decimal.NewFromString(v.String())
		if err != nil {
			return v.String()
		}
		if f, _ := exact.Float64(); decimal.NewFromFloat(f).Equal(exact) {
			return f
		}
		return exact.String()
	default:
		return v
	}
}
