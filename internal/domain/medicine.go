package domain

import "time"

// Medicine models one inventory record.
type Medicine struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Manufacturer string
	Price        float64
	Stock        int
	ExpiryDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
