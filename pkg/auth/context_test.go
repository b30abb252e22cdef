package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithStaffID_StaffIDFromCtx(t *testing.T) {
	staffID := uuid.New()
	ctx := WithStaffID(context.Background(), staffID)

	got, err := StaffIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != staffID {
		t.Fatalf("expected %v, got %v", staffID, got)
	}
}

func TestStaffIDFromCtx_EmptyContext(t *testing.T) {
	_, err := StaffIDFromCtx(context.Background())
	if !errors.Is(err, ErrStaffIDNotFound) {
		t.Fatalf("expected ErrStaffIDNotFound, got %v", err)
	}
}

func TestStaffIDFromCtx_NilUUID(t *testing.T) {
	ctx := WithStaffID(context.Background(), uuid.Nil)
	_, err := StaffIDFromCtx(ctx)
	if !errors.Is(err, ErrStaffIDNotFound) {
		t.Fatalf("expected ErrStaffIDNotFound for uuid.Nil, got %v", err)
	}
}

func TestStaffIDFromCtx_Isolation(t *testing.T) {
	staffID1 := uuid.New()
	staffID2 := uuid.New()

	ctx1 := WithStaffID(context.Background(), staffID1)
	ctx2 := WithStaffID(context.Background(), staffID2)

	got1, _ := StaffIDFromCtx(ctx1)
	got2, _ := StaffIDFromCtx(ctx2)

	if got1 != staffID1 {
		t.Fatalf("ctx1: expected %v, got %v", staffID1, got1)
	}
	if got2 != staffID2 {
		t.Fatalf("ctx2: expected %v, got %v", staffID2, got2)
	}
	if got1 == got2 {
		t.Fatal("expected different StaffIDs in isolated contexts")
	}
}
