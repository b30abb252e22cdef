// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/tableside/pkg/httpx"
	invdomain "github.com/ghuser/tableside/services/inventory/domain"
	menudomain "github.com/ghuser/tableside/services/menu/domain"
	orderdomain "github.com/ghuser/tableside/services/order/domain"
	tabledomain "github.com/ghuser/tableside/services/table/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	// Not found
	case errors.Is(err, invdomain.ErrIngredientNotFound),
		errors.Is(err, menudomain.ErrMenuItemNotFound),
		errors.Is(err, menudomain.ErrCategoryNotFound),
		errors.Is(err, menudomain.ErrRequirementNotFound),
		errors.Is(err, tabledomain.ErrTableNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound),
		errors.Is(err, orderdomain.ErrLineNotFound),
		errors.Is(err, orderdomain.ErrNoActiveOrder):
		return http.StatusNotFound // 404

	// State conflicts
	case errors.Is(err, invdomain.ErrIngredientExists),
		errors.Is(err, tabledomain.ErrTableExists),
		errors.Is(err, tabledomain.ErrTableNotFree),
		errors.Is(err, tabledomain.ErrTableNotOccupied),
		errors.Is(err, tabledomain.ErrTableOccupied),
		errors.Is(err, tabledomain.ErrCleaningInProgress),
		errors.Is(err, orderdomain.ErrOrderNotOpen),
		errors.Is(err, orderdomain.ErrAlreadyPaid),
		errors.Is(err, orderdomain.ErrEmptyOrder):
		return http.StatusConflict // 409

	// Validation failures
	case errors.Is(err, invdomain.ErrInvalidQuantity),
		errors.Is(err, invdomain.ErrInvalidIngredient),
		errors.Is(err, invdomain.ErrInsufficientStock),
		errors.Is(err, menudomain.ErrInvalidQuantity),
		errors.Is(err, menudomain.ErrInvalidMenuItem),
		errors.Is(err, tabledomain.ErrInvalidTable),
		errors.Is(err, orderdomain.ErrInvalidQuantity),
		errors.Is(err, orderdomain.ErrInvalidPaymentMethod):
		return http.StatusUnprocessableEntity // 422

	// ErrConsistencyViolation means the order and table records disagree.
	// That is a server-side invariant breach, not a client mistake.
	default:
		return http.StatusInternalServerError // 500
	}
}
