package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	invdomain "github.com/ghuser/tableside/services/inventory/domain"
	menudomain "github.com/ghuser/tableside/services/menu/domain"
	orderdomain "github.com/ghuser/tableside/services/order/domain"
	tabledomain "github.com/ghuser/tableside/services/table/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrIngredientNotFound", invdomain.ErrIngredientNotFound, http.StatusNotFound},
		{"ErrMenuItemNotFound", menudomain.ErrMenuItemNotFound, http.StatusNotFound},
		{"ErrTableNotFound", tabledomain.ErrTableNotFound, http.StatusNotFound},
		{"ErrOrderNotFound", orderdomain.ErrOrderNotFound, http.StatusNotFound},
		{"ErrNoActiveOrder", orderdomain.ErrNoActiveOrder, http.StatusNotFound},
		{"ErrIngredientExists", invdomain.ErrIngredientExists, http.StatusConflict},
		{"ErrTableNotFree", tabledomain.ErrTableNotFree, http.StatusConflict},
		{"ErrTableOccupied", tabledomain.ErrTableOccupied, http.StatusConflict},
		{"ErrAlreadyPaid", orderdomain.ErrAlreadyPaid, http.StatusConflict},
		{"ErrEmptyOrder", orderdomain.ErrEmptyOrder, http.StatusConflict},
		{"ErrOrderNotOpen", orderdomain.ErrOrderNotOpen, http.StatusConflict},
		{"ErrInsufficientStock", invdomain.ErrInsufficientStock, http.StatusUnprocessableEntity},
		{"ErrInvalidQuantity", orderdomain.ErrInvalidQuantity, http.StatusUnprocessableEntity},
		{"ErrInvalidPaymentMethod", orderdomain.ErrInvalidPaymentMethod, http.StatusUnprocessableEntity},
		{"typed insufficient stock error", &invdomain.InsufficientStockError{
			IngredientName: "Flour",
			Requested:      decimal.NewFromInt(5),
			Available:      decimal.NewFromInt(2),
			Unit:           "kg",
		}, http.StatusUnprocessableEntity},
		{"wrapped ErrTableNotFree", fmt.Errorf("open order: %w", tabledomain.ErrTableNotFree), http.StatusConflict},
		{"ErrConsistencyViolation", orderdomain.ErrConsistencyViolation, http.StatusInternalServerError},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, tabledomain.ErrTableNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, tabledomain.ErrTableNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
