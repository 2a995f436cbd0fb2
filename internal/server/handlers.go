package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/viewdock/pkg/buildinfo"
	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/errors"
	"github.com/matzehuels/viewdock/pkg/observability"
	"github.com/matzehuels/viewdock/pkg/pipeline"
	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/script"
	"github.com/matzehuels/viewdock/pkg/session"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatTree: "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Meta
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// =============================================================================
// Stateless layout
// =============================================================================

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sc, err := script.Read(http.MaxBytesReader(w, r.Body, maxBodySize), script.FormatJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts, err := renderOptions(r, format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Script = sc
	s.render(w, r, opts)
}

// renderOptions reads render settings from the query string.
func renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:    []string{format},
		Background: q.Get("background"),
	}
	for name, dst := range map[string]*bool{
		"labels":  &opts.Labels,
		"inset":   &opts.Inset,
		"visible": &opts.VisibleOnly,
		"refresh": &opts.Refresh,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s: want a boolean, got %q", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale: want a number, got %q", v)
		}
		opts.Scale = f
	}
	return opts, pipeline.ValidateFormats(opts.Formats)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	if n := len(res.Report.Missed); n > 0 {
		w.Header().Set("X-Missed-Ops", strconv.Itoa(n))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// Workspace sessions
// =============================================================================

type createRequest struct {
	Name   string     `json:"name,omitempty"`
	Bounds *dock.Rect `json:"bounds,omitempty"`
	// Script names a script under the configured scripts directory to
	// start from. Bounds and Name are ignored when it is set.
	Script string `json:"script,omitempty"`
}

type workspaceResponse struct {
	ID        string          `json:"id"`
	Script    *script.Script  `json:"script"`
	Layout    json.RawMessage `json:"layout,omitempty"`
	Missed    []script.Miss   `json:"missed,omitempty"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sc, err := s.initialScript(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := dock.New(sc.Bounds); err != nil {
		writeError(w, r, err)
		return
	}

	sess := session.New(sc, s.cfg.SessionTTL)
	if err := s.cfg.Store.Set(r.Context(), sess); err != nil {
		writeError(w, r, err)
		return
	}
	observability.Workspace().OnWorkspaceCreate(r.Context(), sess.ID, len(sess.Script.Ops))
	writeJSON(w, http.StatusCreated, workspaceResponse{ID: sess.ID, Script: sess.Script, ExpiresAt: sess.ExpiresAt})
}

func (s *Server) initialScript(req createRequest) (*script.Script, error) {
	if req.Script != "" {
		if s.cfg.ScriptsDir == "" {
			return nil, errors.New(errors.ErrCodeUnsupported, "no scripts directory configured")
		}
		if err := errors.ValidatePath(req.Script); err != nil {
			return nil, err
		}
		return script.ReadFile(filepath.Join(s.cfg.ScriptsDir, filepath.FromSlash(req.Script)))
	}

	bounds := s.cfg.Bounds
	if req.Bounds != nil {
		bounds = *req.Bounds
	}
	sc := script.New(req.Name, bounds)
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// load fetches the session named in the URL.
func (s *Server) load(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	if err := session.ValidateID(id); err != nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "workspace %q not found", id)
	}
	sess, err := s.cfg.Store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "workspace %q not found", id)
	}
	return sess, nil
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	_, l, report, err := pipeline.BuildLayout(r.Context(), sess.Script)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(l, sink.WithJSONName(sess.Script.Name))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workspaceResponse{
		ID:        sess.ID,
		Script:    sess.Script,
		Layout:    data,
		Missed:    report.Missed,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := session.ValidateID(id); err != nil {
		writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "workspace %q not found", id))
		return
	}
	unlock := s.locks.lock(id)
	defer unlock()
	if err := s.cfg.Store.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	observability.Workspace().OnWorkspaceDelete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

type splitTopRequest struct {
	Handle    dock.ViewHandle `json:"handle"`
	Direction dock.Direction  `json:"direction"`
}

type splitRequest struct {
	Direction dock.Direction  `json:"direction"`
	Target    dock.ViewHandle `json:"target"`
	Handle    dock.ViewHandle `json:"handle"`
}

type splitResponse struct {
	Found bool `json:"found"`
	Views int  `json:"views"`
	Depth int  `json:"depth"`
}

func (s *Server) handleSplitTop(w http.ResponseWriter, r *http.Request) {
	var req splitTopRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.mutate(w, r, script.SplitTop(req.Handle, req.Direction))
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.mutate(w, r, script.SplitByHandle(req.Direction, req.Target, req.Handle))
}

// mutate applies op to the session under its lock. An op whose target is
// not found leaves the session untouched and reports found=false.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op script.Op) {
	if err := op.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ws, _, err := script.Build(sess.Script)
	if err != nil {
		writeError(w, r, err)
		return
	}

	found := op.ApplyTo(ws)
	if found {
		if err := sess.Script.Apply(op); err != nil {
			writeError(w, r, err)
			return
		}
		sess.Touch(s.cfg.SessionTTL)
		if err := s.cfg.Store.Set(r.Context(), sess); err != nil {
			writeError(w, r, err)
			return
		}
	}
	observability.Workspace().OnSplit(r.Context(), id, string(op.Kind), found, ws.Len())
	writeJSON(w, http.StatusOK, splitResponse{Found: found, Views: ws.Len(), Depth: ws.Depth()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r, chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Script = sess.Script
	s.render(w, r, opts)
}

var scriptTypes = map[script.Format]string{
	script.FormatJSON: "application/json",
	script.FormatTOML: "application/toml",
	script.FormatYAML: "application/yaml",
}

// handleScript exports the session's recorded ops so they can be replayed
// with the CLI.
func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	format, err := script.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := s.load(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", scriptTypes[format])
	if err := script.Write(w, sess.Script, format); err != nil {
		s.cfg.Logger.Warn("Script export failed", "id", sess.ID, "err", err)
	}
}
