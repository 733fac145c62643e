package models

import "github.com/shopspring/decimal"

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Technician is read-only reference data describing a repair professional.
type Technician struct {
	ID            string          `json:"id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Rating        float64         `json:"rating" validate:"gte=0,lte=5"`
	JobsCompleted int             `json:"jobsCompleted" validate:"gte=0"`
	Location      Coordinate      `json:"location"`
	Specialties   []ServiceType   `json:"specialties" validate:"required,min=1"`
	Available     bool            `json:"available"`
	Distance      string          `json:"distance"` // pre-computed display label
	PriceEstimate decimal.Decimal `json:"priceEstimate"`
	Verified      bool            `json:"verified"`
}

// Offers reports whether service is one of the technician's specialties.
func (t Technician) Offers(service ServiceType) bool {
	for _, s := range t.Specialties {
		if s == service {
			return true
		}
	}
	return false
}
