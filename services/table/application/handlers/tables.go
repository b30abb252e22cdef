package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/tableside/pkg/errhttp"
	"github.com/ghuser/tableside/pkg/httpx"
	pkgvalidator "github.com/ghuser/tableside/pkg/validator"
	appsvcs "github.com/ghuser/tableside/services/table/application/services"
	"github.com/ghuser/tableside/services/table/domain/models"
)

// CreateTableRequest is the request body for POST /tables.
type CreateTableRequest struct {
	Number   int `json:"number" validate:"required,gt=0" example:"1"`
	Capacity int `json:"capacity" validate:"required,gt=0" example:"4"`
} // @name CreateTableRequest

// TableResponse describes one dining table and its occupancy state.
type TableResponse struct {
	ID            uuid.UUID  `json:"id"`
	Number        int        `json:"number"`
	Capacity      int        `json:"capacity"`
	Status        string     `json:"status"`
	CleaningUntil *time.Time `json:"cleaning_until,omitempty"`
} // @name TableResponse

// TableHandlers serves the floor management endpoints.
type TableHandlers struct {
	svc *appsvcs.Services
}

// NewTableHandlers returns handlers backed by the given services.
func NewTableHandlers(svc *appsvcs.Services) *TableHandlers {
	return &TableHandlers{svc: svc}
}

// ListTables returns the whole floor with current occupancy.
//
//	@Summary	List tables
//	@Tags		tables
//	@Produce	json
//	@Success	200	{array}	TableResponse
//	@Router		/tables [get]
func (h *TableHandlers) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.Registry.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]TableResponse, len(tables))
	for i, t := range tables {
		out[i] = toTableResponse(t)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// CreateTable registers a new table on the floor.
//
//	@Summary	Create table
//	@Tags		tables
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateTableRequest	true	"Table to create"
//	@Success	201		{object}	TableResponse
//	@Failure	409		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Router		/tables [post]
func (h *TableHandlers) CreateTable(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateTableRequest](w, r)
	if !ok {
		return
	}
	table, err := h.svc.Registry.Create(r.Context(), req.Number, req.Capacity)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toTableResponse(table))
}

// DeleteTable removes a table. Tables with a seated party cannot be removed.
//
//	@Summary	Delete table
//	@Tags		tables
//	@Param		id	path	string	true	"Table ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/tables/{id} [delete]
func (h *TableHandlers) DeleteTable(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid table id")
		return
	}
	if err := h.svc.Registry.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toTableResponse(t *models.Table) TableResponse {
	return TableResponse{
		ID:            t.ID,
		Number:        t.Number,
		Capacity:      t.Capacity,
		Status:        string(t.Status),
		CleaningUntil: t.CleaningUntil,
	}
}
