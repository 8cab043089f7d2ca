package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	verrors "github.com/vango-dev/vlist/internal/errors"
	"github.com/vango-dev/vlist/pkg/host"
	"github.com/vango-dev/vlist/pkg/mount"
	"github.com/vango-dev/vlist/pkg/script"
	"github.com/vango-dev/vlist/pkg/snapshot"
)

// RenderResponse is the body returned by POST /render.
type RenderResponse struct {
	Name     string              `json:"name"`
	Steps    []script.StepResult `json:"steps"`
	Snapshot string              `json:"snapshot,omitempty"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error    string              `json:"error"`
	Code     string              `json:"code,omitempty"`
	Location *verrors.Location   `json:"location,omitempty"`
	Steps    []script.StepResult `json:"steps,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "vlist.server.render")
	defer span.End()

	snapName := r.URL.Query().Get("snapshot")
	if snapName != "" {
		if s.config.Store == nil {
			s.writeError(w, http.StatusServiceUnavailable, errSnapshotsDisabled, nil)
			return
		}
		if err := snapshot.ValidateName(snapName); err != nil {
			s.writeError(w, http.StatusBadRequest, err, nil)
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxMessageSize))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err, nil)
		return
	}
	sc, err := script.Parse(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err, nil)
		return
	}
	span.SetAttributes(
		attribute.String("vlist.script", sc.Name),
		attribute.Int("vlist.steps", len(sc.Steps)),
	)

	m := s.newMount()
	results, err := sc.Run(ctx, m)
	html := m.HTML()
	if uerr := m.Unmount(ctx); uerr != nil {
		s.logger.Error("unmount failed", "mount", m.ID(), "error", uerr)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, http.StatusUnprocessableEntity, err, results)
		return
	}

	resp := RenderResponse{Name: sc.Name, Steps: results}
	if snapName != "" {
		if err := s.config.Store.Put(ctx, snapName, []byte(html)); err != nil {
			s.logger.Error("snapshot write failed", "snapshot", snapName, "error", err)
			s.writeError(w, http.StatusBadGateway, verrors.New("E171").Wrap(err), results)
			return
		}
		resp.Snapshot = snapName
	}
	span.SetStatus(codes.Ok, "")
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.config.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, errSnapshotsDisabled, nil)
		return
	}
	infos, err := s.config.Store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err, nil)
		return
	}
	if infos == nil {
		infos = []snapshot.Info{}
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.config.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, errSnapshotsDisabled, nil)
		return
	}
	html, err := s.config.Store.Get(r.Context(), chi.URLParam(r, "name"))
	switch {
	case errors.Is(err, snapshot.ErrInvalidName):
		s.writeError(w, http.StatusBadRequest, err, nil)
	case errors.Is(err, snapshot.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err, nil)
	case err != nil:
		s.writeError(w, http.StatusBadGateway, err, nil)
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
	}
}

var errSnapshotsDisabled = errors.New("snapshot store not configured")

// newMount creates a mount wired to the server's logger, metrics and tracer.
func (s *Server) newMount() *mount.Mount {
	return mount.New(host.NewElement("body"),
		mount.WithLogger(s.logger),
		mount.WithMetrics(s.config.Metrics),
		mount.WithTracerName(s.config.TracerName),
	)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response write failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error, steps []script.StepResult) {
	s.writeJSON(w, status, errorResponse(err, steps))
}

func errorResponse(err error, steps []script.StepResult) ErrorResponse {
	resp := ErrorResponse{Error: err.Error(), Steps: steps}
	var ce *verrors.Error
	if errors.As(err, &ce) {
		resp.Code = ce.Code
		resp.Location = ce.Location
	}
	return resp
}
