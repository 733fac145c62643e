// models/service_type.go
package models

// ServiceType names a repair category offered on the platform.
type ServiceType string

const (
	ServiceAC         ServiceType = "AC Repair"
	ServiceFridge     ServiceType = "Refrigerator"
	ServiceWashing    ServiceType = "Washing Machine"
	ServiceRO         ServiceType = "RO Purifier"
	ServicePlumbing   ServiceType = "Plumbing"
	ServiceElectrical ServiceType = "Electrical"
)

// AllServiceTypes lists the service types in display order.
var AllServiceTypes = []ServiceType{
	ServiceAC,
	ServiceFridge,
	ServiceWashing,
	ServiceRO,
	ServicePlumbing,
	ServiceElectrical,
}

// Service is a catalog entry shown on the home screen.
type Service struct {
	ID    ServiceType `json:"id" validate:"required"`
	Label string      `json:"label" validate:"required"`
	Icon  string      `json:"icon"`
}
