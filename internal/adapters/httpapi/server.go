package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/lier-bua/gear-catalog-api/internal/app/catalog"
	"github.com/lier-bua/gear-catalog-api/internal/app/intake"
	"github.com/lier-bua/gear-catalog-api/internal/domain"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

const (
	maxBodyBytes = 1 << 20

	diagnosticsTimeout   = 5 * time.Second
	diagnosticsMaxErrLen = 120
)

// DiagnosticsInfo is the static deployment information reported by GET /test.
type DiagnosticsInfo struct {
	StorageBackend string
	DatabaseURLSet bool
	DatabaseName   string
}

// Server holds the HTTP handlers.
type Server struct {
	Catalog *catalog.Service
	Intake  *intake.Service

	// Store is only used for diagnostics.
	Store docstore.Store
	Info  DiagnosticsInfo

	Log *zap.Logger
}

func NewServer(catalogSvc *catalog.Service, intakeSvc *intake.Service, store docstore.Store, info DiagnosticsInfo, log *zap.Logger) *Server {
	return &Server{
		Catalog: catalogSvc,
		Intake:  intakeSvc,
		Store:   store,
		Info:    info,
		Log:     log,
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Gear catalog API is running"})
}

// Diagnostics reports backend and storage connectivity. It always answers 200.
func (s *Server) Diagnostics(w http.ResponseWriter, r *http.Request) {
	out := DiagnosticsResponse{
		Backend:          "running",
		StorageBackend:   s.Info.StorageBackend,
		DatabaseURL:      "not set",
		DatabaseName:     "not set",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if s.Info.DatabaseURLSet {
		out.DatabaseURL = "set"
	}
	if s.Info.DatabaseName != "" {
		out.DatabaseName = s.Info.DatabaseName
	}

	ctx, cancel := context.WithTimeout(r.Context(), diagnosticsTimeout)
	defer cancel()

	err := s.Store.Ping(ctx)
	var cs []docstore.Collection
	if err == nil {
		cs, err = s.Store.Collections(ctx)
	}
	if err != nil {
		out.Database = "error: " + truncate(err.Error(), diagnosticsMaxErrLen)
	} else {
		out.Database = "connected"
		out.ConnectionStatus = "Connected"
		for _, c := range cs {
			out.Collections = append(out.Collections, string(c))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type listEquipmentParams struct {
	Q        *string
	Category *string
	Location *string
}

func (s *Server) ListEquipment(w http.ResponseWriter, r *http.Request) {
	var params listEquipmentParams
	query := r.URL.Query()
	for _, p := range []struct {
		name string
		dest **string
	}{
		{"q", &params.Q},
		{"category", &params.Category},
		{"location", &params.Location},
	} {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest); err != nil {
			writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid query parameter",
				map[string]any{p.name: "must be a single string"})
			return
		}
	}

	items, err := s.Catalog.ListEquipment(r.Context(), catalog.Query{
		Q:        deref(params.Q),
		Category: deref(params.Category),
		Location: deref(params.Location),
	})
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	out := EquipmentListResponse{Items: make([]EquipmentItem, 0, len(items))}
	for _, e := range items {
		out.Items = append(out.Items, equipmentItemFromDomain(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	s.handleCreate(w, r, createFunc(s.Intake.CreateEquipment))
}

func (s *Server) CreateMember(w http.ResponseWriter, r *http.Request) {
	s.handleCreate(w, r, createFunc(s.Intake.CreateMember))
}

func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	s.handleCreate(w, r, createFunc(s.Intake.CreateReservation))
}

func (s *Server) CreateReport(w http.ResponseWriter, r *http.Request) {
	s.handleCreate(w, r, createFunc(s.Intake.CreateReport))
}

type createHandler func(ctx context.Context, p domain.Payload) (string, error)

func createFunc[ID ~string](fn func(context.Context, domain.Payload) (ID, error)) createHandler {
	return func(ctx context.Context, p domain.Payload) (string, error) {
		id, err := fn(ctx, p)
		return string(id), err
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, create createHandler) {
	p, err := decodePayload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "request body too large", nil)
			return
		}
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body",
			map[string]any{"body": "must be a JSON object"})
		return
	}
	id, err := create(r.Context(), p)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

var errTrailingData = errors.New("unexpected data after JSON object")

// decodePayload reads exactly one JSON object from the request body.
func decodePayload(w http.ResponseWriter, r *http.Request) (domain.Payload, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var p domain.Payload
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("body is null")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, err
	}
	return p, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
