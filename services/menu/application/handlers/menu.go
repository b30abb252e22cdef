package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tableside/pkg/errhttp"
	"github.com/ghuser/tableside/pkg/httpx"
	pkgvalidator "github.com/ghuser/tableside/pkg/validator"
	appsvcs "github.com/ghuser/tableside/services/menu/application/services"
	"github.com/ghuser/tableside/services/menu/domain/models"
)

// RequirementRequest is one recipe requirement inside CreateMenuItemRequest.
type RequirementRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required" example:"0.3"`
} // @name RequirementRequest

// CreateMenuItemRequest is the request body for POST /menu.
type CreateMenuItemRequest struct {
	CategoryID   uuid.UUID            `json:"category_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string               `json:"name" validate:"required,min=1,max=100" example:"Margherita"`
	Description  string               `json:"description" validate:"max=500" example:"Classic pizza"`
	Price        decimal.Decimal      `json:"price" example:"9.50"`
	Requirements []RequirementRequest `json:"requirements" validate:"dive"`
} // @name CreateMenuItemRequest

// RequirementResponse is one committed recipe requirement.
type RequirementResponse struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
} // @name RequirementResponse

// MenuItemResponse describes one catalog item with its recipe.
type MenuItemResponse struct {
	ID           uuid.UUID             `json:"id"`
	CategoryID   uuid.UUID             `json:"category_id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Price        decimal.Decimal       `json:"price"`
	Requirements []RequirementResponse `json:"requirements"`
} // @name MenuItemResponse

// CategoryResponse describes one menu category.
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
} // @name CategoryResponse

// MenuHandlers serves the menu catalog and recipe authoring surface.
type MenuHandlers struct {
	svc *appsvcs.Services
}

// NewMenuHandlers returns handlers backed by the given services.
func NewMenuHandlers(svc *appsvcs.Services) *MenuHandlers {
	return &MenuHandlers{svc: svc}
}

// ListCategories returns all categories.
//
//	@Summary	List categories
//	@Tags		menu
//	@Produce	json
//	@Success	200	{array}	CategoryResponse
//	@Router		/categories [get]
func (h *MenuHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Catalog.ListCategories(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// ListMenuItems returns the full menu with recipes.
//
//	@Summary	List menu items
//	@Tags		menu
//	@Produce	json
//	@Success	200	{array}	MenuItemResponse
//	@Router		/menu [get]
func (h *MenuHandlers) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Catalog.ListMenuItems(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	out := make([]MenuItemResponse, len(items))
	for i, item := range items {
		out[i] = toMenuItemResponse(item)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// CreateMenuItem authors a new menu item. Each requirement is validated
// against available stock; the item and its requirements are committed
// together or not at all.
//
//	@Summary	Create menu item
//	@Tags		menu
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateMenuItemRequest	true	"Menu item with recipe"
//	@Success	201		{object}	MenuItemResponse
//	@Failure	409		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Router		/menu [post]
func (h *MenuHandlers) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateMenuItemRequest](w, r)
	if !ok {
		return
	}

	draft := h.svc.Recipes.NewDraft()
	for _, reqmt := range req.Requirements {
		if err := h.svc.Recipes.AddRequirement(r.Context(), draft, reqmt.IngredientID, reqmt.Quantity); err != nil {
			errhttp.WriteError(w, err)
			return
		}
	}

	item, err := h.svc.Recipes.Commit(r.Context(), draft, req.CategoryID, req.Name, req.Description, req.Price)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toMenuItemResponse(item))
}

// DeleteMenuItem removes a menu item from the catalog.
//
//	@Summary	Delete menu item
//	@Tags		menu
//	@Param		id	path	string	true	"Menu item ID"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/menu/{id} [delete]
func (h *MenuHandlers) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid menu item id")
		return
	}
	if err := h.svc.Catalog.DeleteMenuItem(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toMenuItemResponse(item *models.MenuItem) MenuItemResponse {
	reqs := make([]RequirementResponse, len(item.Requirements))
	for i, req := range item.Requirements {
		reqs[i] = RequirementResponse{IngredientID: req.IngredientID, Quantity: req.Quantity}
	}
	return MenuItemResponse{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		Requirements: reqs,
	}
}
