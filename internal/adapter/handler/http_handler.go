package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rl1809/kids-stock/internal/core/domain"
)

type GroupService interface {
	CreateGroup(ctx context.Context, name string) (*domain.Group, error)
	GetGroupByToken(ctx context.Context, token string) (*domain.Group, error)
}

type ChildService interface {
	CreateChild(ctx context.Context, token, name string) (*domain.Child, error)
	GetChild(ctx context.Context, id int64) (*domain.Child, error)
	ListChildren(ctx context.Context, token string) ([]domain.Child, error)
	UpdateChild(ctx context.Context, id int64, name string) (*domain.Child, error)
	DeleteChild(ctx context.Context, id int64) error
}

type StockService interface {
	GetStock(ctx context.Context, childID int64) (*domain.StockView, error)
	IncrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error)
	DecrementStock(ctx context.Context, childID, categoryID int64, amount int) (*domain.StockChange, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.ClothingCategory, error)
}

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Groups     GroupService
	Children   ChildService
	Stock      StockService
	Categories CategoryService
	// Checks maps a component name to its readiness probe.
	Checks map[string]Pinger
	Logger *zap.Logger
}

type HTTPHandler struct {
	groups     GroupService
	children   ChildService
	stock      StockService
	categories CategoryService
	checks     map[string]Pinger
	logger     *zap.Logger
}

func NewHTTPHandler(d Deps) *HTTPHandler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{
		groups:     d.Groups,
		children:   d.Children,
		stock:      d.Stock,
		categories: d.Categories,
		checks:     d.Checks,
		logger:     logger,
	}
}

// NewRouter serves the API both at the root and under /api.
func NewRouter(h *HTTPHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID, Recovery(h.logger), Logger(h.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	r.Get("/health", h.HealthCheck)
	r.Get("/ready", h.Ready)

	h.routes(r)
	r.Route("/api", h.routes)

	return r
}

func (h *HTTPHandler) routes(r chi.Router) {
	r.Post("/groups", h.CreateGroup)
	r.Get("/groups/{token}", h.GetGroup)
	r.Get("/groups/{token}/children", h.ListChildren)
	r.Post("/groups/{token}/children", h.CreateChild)

	r.Get("/children/{id}", h.GetChild)
	r.Put("/children/{id}", h.UpdateChild)
	r.Delete("/children/{id}", h.DeleteChild)

	r.Get("/children/{id}/stock", h.GetStock)
	r.Post("/children/{id}/stock-increment", h.IncrementStock)
	r.Post("/children/{id}/stock-decrement", h.DecrementStock)

	r.Get("/clothing-categories", h.ListCategories)
}

func (h *HTTPHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	name, err := decodeName(r, domain.LabelGroupName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "group created", toGroupJSON(*group))
}

func (h *HTTPHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroupByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "group retrieved", toGroupJSON(*group))
}

func (h *HTTPHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.children.ListChildren(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "children retrieved", toChildrenJSON(children))
}

func (h *HTTPHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	name, err := decodeName(r, domain.LabelChildName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	child, err := h.children.CreateChild(r.Context(), chi.URLParam(r, "token"), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "child created", toChildJSON(*child))
}

func (h *HTTPHandler) GetChild(w http.ResponseWriter, r *http.Request) {
	id, err := childID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	child, err := h.children.GetChild(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "child retrieved", toChildJSON(*child))
}

func (h *HTTPHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	name, err := decodeName(r, domain.LabelChildName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := childID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	child, err := h.children.UpdateChild(r.Context(), id, name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "child updated", toChildJSON(*child))
}

func (h *HTTPHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	id, err := childID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.children.DeleteChild(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "child deleted", nil)
}

func (h *HTTPHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id, err := childID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.stock.GetStock(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "stock retrieved", toStockViewJSON(*view))
}

func (h *HTTPHandler) IncrementStock(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStockChange(r, domain.FieldIncrement, domain.LabelIncrement)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := childID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	change, err := h.stock.IncrementStock(r.Context(), id, req.CategoryID, req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "stock incremented", toStockChangeJSON(*change))
}

func (h *HTTPHandler) DecrementStock(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStockChange(r, domain.FieldDecrement, domain.LabelDecrement)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := childID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	change, err := h.stock.DecrementStock(r.Context(), id, req.CategoryID, req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "stock decremented", toStockChangeJSON(*change))
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "clothing categories retrieved", categoriesJSON{Categories: categories})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready pings every registered dependency: 200 if all answer, 503 otherwise.
func (h *HTTPHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("component", name), zap.Error(err))
			components[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "down"
	}
	writeJSON(w, status, map[string]any{"status": overall, "components": components})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve  *domain.ValidationError
		ise *domain.InsufficientStockError
	)

	switch {
	case errors.Is(err, errInvalidBody):
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
	case errors.As(err, &ve):
		writeFailure(w, http.StatusUnprocessableEntity, ve.Errors[0].Message, ve.Fields())
	case errors.As(err, &ise):
		writeFailure(w, http.StatusBadRequest, "stock cannot go below zero", insufficientStockJSON{
			CurrentCount:       ise.CurrentCount,
			RequestedDecrement: ise.Requested,
		})
	case errors.Is(err, domain.ErrGroupNotFound):
		writeFailure(w, http.StatusNotFound, "group not found for the given token", nil)
	case errors.Is(err, domain.ErrChildNotFound):
		writeFailure(w, http.StatusNotFound, "child not found", nil)
	case errors.Is(err, domain.ErrStockNotFound):
		writeFailure(w, http.StatusNotFound, "no stock exists for the specified item", nil)
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "not found", nil)
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeFailure(w, http.StatusInternalServerError, "internal error", nil)
	}
}
