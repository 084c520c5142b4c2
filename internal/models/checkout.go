package models

import (
	"time"
)

// CheckoutStatus is open (checked_out) or closed (returned).
type CheckoutStatus string

const (
	CheckoutStatusCheckedOut CheckoutStatus = "checked_out"
	CheckoutStatusReturned   CheckoutStatus = "returned"
)

// CheckoutType distinguishes lending the whole folder from lending
// individual documents out of it.
type CheckoutType string

const (
	CheckoutTypeFull    CheckoutType = "full"
	CheckoutTypePartial CheckoutType = "partial"
)

type Checkout struct {
	ID                string         `json:"id" db:"id"`
	FolderID          string         `json:"folder_id" db:"folder_id"`
	Type              CheckoutType   `json:"type" db:"type"`
	Description       string         `json:"description,omitempty" db:"description"` // required for partial
	PersonName        string         `json:"person_name" db:"person_name"`
	PersonSurname     string         `json:"person_surname" db:"person_surname"`
	Phone             string         `json:"phone,omitempty" db:"phone"`
	Reason            string         `json:"reason,omitempty" db:"reason"`
	CheckoutDate      time.Time      `json:"checkout_date" db:"checkout_date"`
	PlannedReturnDate time.Time      `json:"planned_return_date" db:"planned_return_date"`
	ActualReturnDate  *time.Time     `json:"actual_return_date,omitempty" db:"actual_return_date"`
	Status            CheckoutStatus `json:"status" db:"status"`
}

type CreateCheckoutRequest struct {
	Type              CheckoutType `json:"type"`
	Description       string       `json:"description,omitempty"`
	PersonName        string       `json:"person_name"`
	PersonSurname     string       `json:"person_surname"`
	Phone             string       `json:"phone,omitempty"`
	Reason            string       `json:"reason,omitempty"`
	CheckoutDate      time.Time    `json:"checkout_date"`
	PlannedReturnDate time.Time    `json:"planned_return_date"`
}

// CheckoutFilter narrows checkout listings.
type CheckoutFilter struct {
	FolderID string
	Status   CheckoutStatus
}
