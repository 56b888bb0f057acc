package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/molgraph/pkg/buildinfo"
	"github.com/matzehuels/molgraph/pkg/errors"
	molio "github.com/matzehuels/molgraph/pkg/io"
	"github.com/matzehuels/molgraph/pkg/pipeline"
	"github.com/matzehuels/molgraph/pkg/smiles"
	"github.com/matzehuels/molgraph/pkg/storage"
)

type parseRequest struct {
	Notation  string          `json:"notation"`
	Parse     *smiles.Options `json:"parse,omitempty"`
	Formats   []string        `json:"formats,omitempty"`
	Layout    string          `json:"layout,omitempty"`
	Hydrogens *bool           `json:"hydrogens,omitempty"`
	Detailed  bool            `json:"detailed,omitempty"`
}

// options merges the request over the server defaults.
func (req parseRequest) options(defaults pipeline.Options) pipeline.Options {
	opts := pipeline.Options{
		Notation:  req.Notation,
		Parse:     defaults.Parse,
		Formats:   req.Formats,
		Layout:    defaults.Layout,
		Hydrogens: defaults.Hydrogens,
		Detailed:  req.Detailed,
	}
	if req.Parse != nil {
		opts.Parse = *req.Parse
	}
	if req.Layout != "" {
		opts.Layout = req.Layout
	}
	if req.Hydrogens != nil {
		opts.Hydrogens = *req.Hydrogens
	}
	return opts
}

type parseResponse struct {
	ID        string            `json:"id"`
	Notation  string            `json:"notation"`
	Formula   string            `json:"formula"`
	AtomCount int               `json:"atom_count"`
	EdgeCount int               `json:"edge_count"`
	Cached    bool              `json:"cached"`
	Molecule  molio.Document    `json:"molecule"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

type moleculeResponse struct {
	ID        string         `json:"id"`
	Notation  string         `json:"notation"`
	Formula   string         `json:"formula"`
	Options   smiles.Options `json:"options"`
	CreatedAt time.Time      `json:"created_at"`
	Molecule  molio.Document `json:"molecule"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorBody struct {
	Code     errors.Code `json:"code"`
	Message  string      `json:"message"`
	Position *int        `json:"position,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req parseRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Code: errors.ErrCodeInvalidInput, Message: "request body too large"})
			return
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	opts := req.options(s.cfg.Defaults)
	opts.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := storage.NewRecord(res.Molecule, s.runner.Table.Fingerprint(), opts.Parse)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec, err = s.store.Save(r.Context(), rec)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := parseResponse{
		ID:        rec.ID,
		Notation:  res.Molecule.Notation,
		Formula:   res.Molecule.Formula(),
		AtomCount: res.Stats.AtomCount,
		EdgeCount: res.Stats.EdgeCount,
		Cached:    res.CacheInfo.ParseHit,
		Molecule:  molio.ToDocument(res.Molecule),
	}
	for format, data := range res.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
}

func (s *Server) handleGetMolecule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !storage.ValidID(id) {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid molecule id %q", id))
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, moleculeResponse{
			ID:        rec.ID,
			Notation:  rec.Notation,
			Formula:   rec.Formula,
			Options:   rec.Options,
			CreatedAt: rec.CreatedAt,
			Molecule:  rec.Document,
		})
		return
	}

	m, err := rec.Molecule()
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := s.cfg.Defaults
	opts.Notation = rec.Notation
	opts.Formats = []string{format}
	opts.Logger = s.logger
	artifacts, err := s.runner.Render(r.Context(), m, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch code := errors.GetCode(err); {
	case errors.IsParseError(err), code == errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		msg = "internal error"
	}
	body := errorBody{Code: code, Message: msg}
	if pos, ok := errors.Position(err); ok {
		body.Position = &pos
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
