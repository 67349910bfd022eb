package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/record-services/internal/http/middleware"
	"github.com/rogerio-castellano/record-services/internal/schema"
	"github.com/rogerio-castellano/record-services/internal/service"
)

// Routes is implemented by anything that mounts endpoints on a router.
type Routes interface {
	Register(r chi.Router)
}

// RecordHandlers serves create and get-by-id for one entity.
type RecordHandlers[T any] struct {
	res    service.Resource[T]
	logger *slog.Logger
	now    func() time.Time
}

func NewRecordHandlers[T any](res service.Resource[T], logger *slog.Logger) *RecordHandlers[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordHandlers[T]{res: res, logger: logger, now: time.Now}
}

// WithClock replaces the time source used for server side fields.
func (h *RecordHandlers[T]) WithClock(now func() time.Time) *RecordHandlers[T] {
	h.now = now
	return h
}

// Register mounts POST /<name> and GET /<name>/{id}. Ids that are not
// decimal integers do not match and fall through to the router's 404.
func (h *RecordHandlers[T]) Register(r chi.Router) {
	r.Post("/"+h.res.Name, h.Create)
	r.Get("/"+h.res.Name+"/{id:[0-9]+}", h.GetByID)
}

func (h *RecordHandlers[T]) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := readObject(w, r)
	if err != nil {
		var verr schema.Errors
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &verr):
			h.write(w, r, http.StatusBadRequest, ErrorResponse{Error: verr})
		case errors.As(err, &tooLarge):
			h.write(w, r, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
		default:
			h.write(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
		}
		return
	}

	values, verrs := h.res.Schema.Load(raw)
	if len(verrs) > 0 {
		h.write(w, r, http.StatusBadRequest, ErrorResponse{Error: verrs})
		return
	}

	created, err := h.res.Store.Create(r.Context(), h.res.Build(values, h.now()))
	if err != nil {
		if h.res.Conflict != nil && errors.Is(err, h.res.Conflict) {
			h.write(w, r, http.StatusConflict, ErrorResponse{Error: h.res.ConflictMessage})
			return
		}
		h.serverError(w, r, "create failed", err)
		return
	}

	h.write(w, r, http.StatusCreated, created)
}

func (h *RecordHandlers[T]) GetByID(w http.ResponseWriter, r *http.Request) {
	// Ids are 32-bit columns. Only digits reach here, so a parse failure is
	// an id too large to exist and never reaches the store.
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		h.write(w, r, http.StatusNotFound, ErrorResponse{Error: h.res.NotFoundMessage})
		return
	}

	record, err := h.res.Store.GetByID(r.Context(), int(id))
	if err != nil {
		if errors.Is(err, h.res.NotFound) {
			h.write(w, r, http.StatusNotFound, ErrorResponse{Error: h.res.NotFoundMessage})
			return
		}
		h.serverError(w, r, "lookup failed", err)
		return
	}

	h.write(w, r, http.StatusOK, record)
}

func (h *RecordHandlers[T]) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		slog.String("service", h.res.Name),
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("error", err.Error()),
	)
	h.write(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func (h *RecordHandlers[T]) write(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write response",
			slog.String("service", h.res.Name),
			slog.String("error", err.Error()),
		)
	}
}
