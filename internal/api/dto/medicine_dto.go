package dto

import (
	"time"

	"github.com/spec-kit/medicine-service/internal/domain"
)

// MedicineCreateRequest payload.
type MedicineCreateRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Manufacturer string     `json:"manufacturer"`
	Price        float64    `json:"price"`
	Stock        int        `json:"stock"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// MedicineUpdateRequest payload; absent fields are left untouched.
type MedicineUpdateRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	Manufacturer *string    `json:"manufacturer"`
	Price        *float64   `json:"price"`
	Stock        *int       `json:"stock"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// MedicineResponse is the outward view of an inventory record.
type MedicineResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category,omitempty"`
	Manufacturer string     `json:"manufacturer,omitempty"`
	Price        float64    `json:"price"`
	Stock        int        `json:"stock"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewMedicineResponse maps a domain medicine to its outward view.
func NewMedicineResponse(med *domain.Medicine) MedicineResponse {
	return MedicineResponse{
		ID:           med.ID,
		Name:         med.Name,
		Description:  med.Description,
		Category:     med.Category,
		Manufacturer: med.Manufacturer,
		Price:        med.Price,
		Stock:        med.Stock,
		ExpiryDate:   med.ExpiryDate,
		CreatedAt:    med.CreatedAt,
		UpdatedAt:    med.UpdatedAt,
	}
}
