package models

import (
	"time"
)

type Department struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateDepartmentRequest struct {
	Name string `json:"name"`
}
