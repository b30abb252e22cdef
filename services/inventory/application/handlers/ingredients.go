package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tableside/pkg/errhttp"
	"github.com/ghuser/tableside/pkg/httpx"
	pkgvalidator "github.com/ghuser/tableside/pkg/validator"
	appsvcs "github.com/ghuser/tableside/services/inventory/application/services"
	"github.com/ghuser/tableside/services/inventory/domain/models"
)

// CreateIngredientRequest is the request body for POST /ingredients.
type CreateIngredientRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=100" example:"Tomatoes"`
	Unit  string          `json:"unit" validate:"required,min=1,max=20" example:"kg"`
	Stock decimal.Decimal `json:"stock" example:"10"`
} // @name CreateIngredientRequest

// RestockRequest is the request body for POST /ingredients/{id}/restock.
type RestockRequest struct {
	Delta decimal.Decimal `json:"delta" validate:"required" example:"5"`
} // @name RestockRequest

// IngredientResponse describes one ingredient with its stock level.
type IngredientResponse struct {
	ID    uuid.UUID       `json:"id"    example:"123e4567-e89b-12d3-a456-426614174000"`
	Name  string          `json:"name"  example:"Tomatoes"`
	Unit  string          `json:"unit"  example:"kg"`
	Stock decimal.Decimal `json:"stock" example:"10"`
} // @name IngredientResponse

// IngredientHandlers serves the ingredient admin surface.
type IngredientHandlers struct {
	svc *appsvcs.Services
}

// NewIngredientHandlers returns handlers backed by the given services.
func NewIngredientHandlers(svc *appsvcs.Services) *IngredientHandlers {
	return &IngredientHandlers{svc: svc}
}

// List returns all ingredients with stock.
//
//	@Summary	List ingredients
//	@Tags		inventory
//	@Produce	json
//	@Success	200	{array}	IngredientResponse
//	@Router		/ingredients [get]
func (h *IngredientHandlers) List(w http.ResponseWriter, r *http.Request) {
	ings, err := h.svc.Stock.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]IngredientResponse, len(ings))
	for i, ing := range ings {
		out[i] = toResponse(ing)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Create registers a new ingredient.
//
//	@Summary	Create ingredient
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateIngredientRequest	true	"Ingredient"
//	@Success	201		{object}	IngredientResponse
//	@Failure	422		{object}	map[string]string
//	@Router		/ingredients [post]
func (h *IngredientHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateIngredientRequest](w, r)
	if !ok {
		return
	}
	ing, err := h.svc.Stock.Create(r.Context(), req.Name, req.Unit, req.Stock)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(ing))
}

// Restock increases an ingredient's stock.
//
//	@Summary	Restock ingredient
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Ingredient ID"
//	@Param		request	body		RestockRequest	true	"Restock delta"
//	@Success	200		{object}	IngredientResponse
//	@Failure	404		{object}	map[string]string
//	@Router		/ingredients/{id}/restock [post]
func (h *IngredientHandlers) Restock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid ingredient id")
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RestockRequest](w, r)
	if !ok {
		return
	}
	ing, err := h.svc.Stock.Restock(r.Context(), id, req.Delta)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(ing))
}

// Delete removes an ingredient.
//
//	@Summary	Delete ingredient
//	@Tags		inventory
//	@Param		id	path	string	true	"Ingredient ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/ingredients/{id} [delete]
func (h *IngredientHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid ingredient id")
		return
	}
	if err := h.svc.Stock.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(ing *models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:    ing.ID,
		Name:  ing.Name,
		Unit:  ing.Unit,
		Stock: ing.StockQuantity,
	}
}
