package server

import (
	"encoding/json"
	goerrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/boxscene/pkg/buildinfo"
	"github.com/matzehuels/boxscene/pkg/errors"
	"github.com/matzehuels/boxscene/pkg/pipeline"
	"github.com/matzehuels/boxscene/pkg/render/tree"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Resolve().Version,
	})
}

// handleRender renders the posted diagram to one format.
//
// Query parameters: format (default svg), scale (png only), boxes, measurer.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Source:   body,
		Name:     "request",
		Formats:  []string{valueOr(q.Get("format"), pipeline.FormatSVG)},
		Measurer: q.Get("measurer"),
		Title:    q.Get("title"),
		Logger:   s.logger.With("request_id", RequestID(r.Context())),
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
	}
	if v := q.Get("boxes"); v != "" {
		if opts.Boxes, err = strconv.ParseBool(v); err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid boxes %q", v))
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// handleTree returns the ownership tree of the posted diagram.
//
// Query parameters: format (dot or svg, default dot), detailed.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	format := valueOr(q.Get("format"), pipeline.FormatDOT)
	if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "invalid tree format: %q (must be one of: dot, svg)", format))
		return
	}
	detailed, _ := strconv.ParseBool(q.Get("detailed"))

	_, sc, err := s.runner.Build(r.Context(), body, pipeline.Options{
		Source:   body,
		Measurer: q.Get("measurer"),
		Logger:   s.logger.With("request_id", RequestID(r.Context())),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	dot := tree.ToDOT(sc, tree.Options{Detailed: detailed, Constraints: true, Unattached: true})

	if format == pipeline.FormatDOT {
		w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatDOT])
		_, _ = io.WriteString(w, dot)
		return
	}
	svg, err := tree.RenderSVG(r.Context(), dot)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatSVG])
	_, _ = w.Write(svg)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if goerrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "diagram exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeMissingParam, "request body must contain a TOML diagram")
	}
	return body, nil
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodePositionCycle, errors.ErrCodeOwnershipCycle:
		return http.StatusUnprocessableEntity
	}
	if errors.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(c pipeline.CacheInfo) string {
	if c.AllHit() {
		return "hit"
	}
	return "miss"
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
