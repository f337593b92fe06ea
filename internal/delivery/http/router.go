// Package http serves the station manage API over the loaded catalog.
package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/catalog"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/ekimei-quiz-bot/internal/service"
)

const (
	msgLoading    = "読み込み中..."
	msgLoadFailed = "Failed to fetch stations"
)

type CatalogSource interface {
	Status() catalog.Status
	Catalog() (*entities.Catalog, error)
}

type DraftStore interface {
	Rows(c *entities.Catalog) []entities.Station
	Edited(c *entities.Catalog) []service.DraftRow
	SetField(c *entities.Catalog, stationID int, field, value string) (entities.Station, error)
	SetWrongReading(c *entities.Catalog, stationID, index int, value string) (entities.Station, error)
	Discard()
}

type handler struct {
	catalog CatalogSource
	drafts  DraftStore
	logger  *zap.Logger
}

// NewRouter builds the manage API.
func NewRouter(source CatalogSource, drafts DraftStore, logger *zap.Logger) nethttp.Handler {
	h := &handler{catalog: source, drafts: drafts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stations", h.listStations)
		r.Patch("/stations/{stationID}", h.setField)
		r.Put("/stations/{stationID}/wrong-readings/{index}", h.setWrongReading)
		r.Get("/drafts", h.listDrafts)
		r.Delete("/drafts", h.discardDrafts)
	})

	return r
}

func (h *handler) health(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]string{
		"status":  "ok",
		"catalog": string(h.catalog.Status()),
	})
}

func (h *handler) listStations(w nethttp.ResponseWriter, _ *nethttp.Request) {
	c, ok := h.loadedCatalog(w)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.drafts.Rows(c))
}

func (h *handler) listDrafts(w nethttp.ResponseWriter, _ *nethttp.Request) {
	c, ok := h.loadedCatalog(w)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.drafts.Edited(c))
}

func (h *handler) discardDrafts(w nethttp.ResponseWriter, _ *nethttp.Request) {
	h.drafts.Discard()
	w.WriteHeader(nethttp.StatusNoContent)
}

func (h *handler) setField(w nethttp.ResponseWriter, r *nethttp.Request) {
	c, ok := h.loadedCatalog(w)
	if !ok {
		return
	}

	stationID, err := strconv.Atoi(chi.URLParam(r, "stationID"))
	if err != nil {
		writeErr(w, nethttp.StatusBadRequest, "invalid station id")
		return
	}

	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, nethttp.StatusBadRequest, "bad json")
		return
	}

	s, err := h.drafts.SetField(c, stationID, req.Field, req.Value)
	if err != nil {
		h.writeDraftErr(w, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, s)
}

func (h *handler) setWrongReading(w nethttp.ResponseWriter, r *nethttp.Request) {
	c, ok := h.loadedCatalog(w)
	if !ok {
		return
	}

	stationID, err := strconv.Atoi(chi.URLParam(r, "stationID"))
	if err != nil {
		writeErr(w, nethttp.StatusBadRequest, "invalid station id")
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeErr(w, nethttp.StatusBadRequest, "invalid wrong reading index")
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, nethttp.StatusBadRequest, "bad json")
		return
	}

	s, err := h.drafts.SetWrongReading(c, stationID, index, req.Value)
	if err != nil {
		h.writeDraftErr(w, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, s)
}

// loadedCatalog writes 503 while the catalog is loading or after it failed.
func (h *handler) loadedCatalog(w nethttp.ResponseWriter) (*entities.Catalog, bool) {
	c, err := h.catalog.Catalog()
	switch {
	case err == nil:
		return c, true
	case errors.Is(err, catalog.ErrLoading):
		writeErr(w, nethttp.StatusServiceUnavailable, msgLoading)
	default:
		writeErr(w, nethttp.StatusServiceUnavailable, msgLoadFailed)
	}
	return nil, false
}

func (h *handler) writeDraftErr(w nethttp.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStationNotFound):
		writeErr(w, nethttp.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownField), errors.Is(err, service.ErrWrongReadingIndex):
		writeErr(w, nethttp.StatusBadRequest, err.Error())
	default:
		h.logger.Error("draft edit failed", zap.Error(err))
		writeErr(w, nethttp.StatusInternalServerError, "internal error")
	}
}

func requestLogger(logger *zap.Logger) func(nethttp.Handler) nethttp.Handler {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w nethttp.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
