package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"arkiv/internal/domain"
	"arkiv/internal/models"
	"arkiv/internal/notify"
)

func TestCheckoutAndReturnCycle(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Legal")
	folder := env.mustCreateFolder(t, dept.ID, nil)
	ctx := context.Background()

	checkout, err := env.checkouts.Checkout(ctx, folder.ID, validCheckoutRequest())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if checkout.Status != models.CheckoutStatusCheckedOut {
		t.Errorf("checkout status = %s, want checked_out", checkout.Status)
	}

	got, err := env.folders.Get(ctx, folder.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.FolderStatusCheckedOut {
		t.Errorf("folder status = %s, want checked_out", got.Status)
	}
	if n := env.countLogs(t, models.LogTypeCheckout, folder.ID); n != 1 {
		t.Errorf("checkout log entries = %d, want exactly 1", n)
	}
	if n := env.countEvents(notify.EventCheckoutCreated, folder.ID); n != 1 {
		t.Errorf("checkout_created events = %d, want exactly 1", n)
	}

	returned, err := env.checkouts.Return(ctx, folder.ID)
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if returned.Status != models.CheckoutStatusReturned {
		t.Errorf("returned status = %s, want returned", returned.Status)
	}
	if returned.ActualReturnDate == nil {
		t.Error("actual return date not set")
	}

	got, err = env.folders.Get(ctx, folder.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.FolderStatusArchived {
		t.Errorf("folder status after return = %s, want archived", got.Status)
	}
	if n := env.countLogs(t, models.LogTypeReturn, folder.ID); n != 1 {
		t.Errorf("return log entries = %d, want exactly 1", n)
	}
	if n := env.countEvents(notify.EventCheckoutUpdated, folder.ID); n != 1 {
		t.Errorf("checkout_updated events = %d, want exactly 1", n)
	}
}

func TestCheckoutRejectsSecondOpenCheckout(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Legal")
	folder := env.mustCreateFolder(t, dept.ID, nil)
	ctx := context.Background()

	if _, err := env.checkouts.Checkout(ctx, folder.ID, validCheckoutRequest()); err != nil {
		t.Fatalf("first Checkout: %v", err)
	}
	_, err := env.checkouts.Checkout(ctx, folder.ID, validCheckoutRequest())
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Checkout error = %v, want conflict", err)
	}

	// A new checkout is allowed again after the folder comes back.
	if _, err := env.checkouts.Return(ctx, folder.ID); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if _, err := env.checkouts.Checkout(ctx, folder.ID, validCheckoutRequest()); err != nil {
		t.Errorf("Checkout after return: %v", err)
	}
}

func TestCheckoutValidation(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Legal")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	tests := []struct {
		name   string
		mutate func(*models.CreateCheckoutRequest)
	}{
		{"missing type", func(r *models.CreateCheckoutRequest) { r.Type = "" }},
		{"bad type", func(r *models.CreateCheckoutRequest) { r.Type = "temporary" }},
		{"partial without description", func(r *models.CreateCheckoutRequest) {
			r.Type = models.CheckoutTypePartial
			r.Description = ""
		}},
		{"missing person name", func(r *models.CreateCheckoutRequest) { r.PersonName = "" }},
		{"missing person surname", func(r *models.CreateCheckoutRequest) { r.PersonSurname = "" }},
		{"letters in phone", func(r *models.CreateCheckoutRequest) { r.Phone = "041-CALL-ME" }},
		{"missing checkout date", func(r *models.CreateCheckoutRequest) { r.CheckoutDate = time.Time{} }},
		{"planned return before checkout", func(r *models.CreateCheckoutRequest) {
			r.PlannedReturnDate = r.CheckoutDate.AddDate(0, 0, -1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckoutRequest()
			tt.mutate(req)
			_, err := env.checkouts.Checkout(context.Background(), folder.ID, req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Checkout() error = %v, want validation error", err)
			}
		})
	}
}

func TestPartialCheckoutWithDescription(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Legal")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	req := validCheckoutRequest()
	req.Type = models.CheckoutTypePartial
	req.Description = "contract annexes 3 and 4"

	checkout, err := env.checkouts.Checkout(context.Background(), folder.ID, req)
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if checkout.Type != models.CheckoutTypePartial {
		t.Errorf("type = %s, want partial", checkout.Type)
	}
}

func TestReturnWithoutOpenCheckout(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Legal")
	folder := env.mustCreateFolder(t, dept.ID, nil)

	_, err := env.checkouts.Return(context.Background(), folder.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Return() error = %v, want not found", err)
	}
}

func TestListCheckoutsByStatus(t *testing.T) {
	env := newTestEnv(t)
	dept := env.mustCreateDepartment(t, "Legal")
	first := env.mustCreateFolder(t, dept.ID, nil)
	second := env.mustCreateFolder(t, dept.ID, func(r *models.CreateFolderRequest) {
		r.FileCode = "2020-0043"
	})
	ctx := context.Background()

	if _, err := env.checkouts.Checkout(ctx, first.ID, validCheckoutRequest()); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if _, err := env.checkouts.Checkout(ctx, second.ID, validCheckoutRequest()); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if _, err := env.checkouts.Return(ctx, first.ID); err != nil {
		t.Fatalf("Return: %v", err)
	}

	open, err := env.checkouts.List(ctx, &models.CheckoutFilter{Status: models.CheckoutStatusCheckedOut})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(open) != 1 || open[0].FolderID != second.ID {
		t.Errorf("open checkouts = %d, want 1 for the second folder", len(open))
	}
}
