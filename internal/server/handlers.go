package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/itsmostafa/mktoc/internal/lint"
	"github.com/itsmostafa/mktoc/internal/toc"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	doc, cfg, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	markdown(w, s.gen.MakeTOC(doc, cfg))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, cfg, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	markdown(w, s.gen.Generate(doc, cfg))
}

type headingsResponse struct {
	Source   string        `json:"config_source"`
	Headings []toc.Heading `json:"headings"`
}

func (s *Server) handleHeadings(w http.ResponseWriter, r *http.Request) {
	doc, cfg, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	res := s.gen.Resolve(doc, cfg)
	headings := slices.Collect(toc.Headings(doc, res.Config.MinDepth, res.Config.MaxDepth))
	if headings == nil {
		headings = []toc.Heading{}
	}
	writeJSON(w, http.StatusOK, headingsResponse{Source: res.Source.String(), Headings: headings})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	doc, cfg, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	report, err := lint.Check(doc, cfg, s.gen)
	if err != nil {
		s.log.Error("lint failed", "error", err)
		jsonError(w, "failed to check document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// readRequest reads the document body and builds the fallback config from
// the query string. It writes the error response itself and reports false
// when the request cannot be served.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (string, toc.Config, bool) {
	cfg, err := s.queryConfig(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", toc.Config{}, false
	}

	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return "", toc.Config{}, false
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return "", toc.Config{}, false
	}
	return string(data), cfg, true
}

func (s *Server) queryConfig(r *http.Request) (toc.Config, error) {
	cfg := s.fallback
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"min_depth", &cfg.MinDepth},
		{"max_depth", &cfg.MaxDepth},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return toc.Config{}, fmt.Errorf("invalid %s: %q", p.name, v)
		}
		*p.dst = n
	}

	if v := q.Get("wrap_in_details"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return toc.Config{}, fmt.Errorf("invalid wrap_in_details: %q", v)
		}
		cfg.WrapInDetails = b
	}
	return cfg, nil
}

func markdown(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
