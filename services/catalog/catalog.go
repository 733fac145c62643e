package catalog

import (
	"errors"
	"fmt"
	"strings"

	"vijayfix/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrUnknownService     = errors.New("unknown service type")
)

// Directory is the read-only lookup surface used by the booking controller and handlers.
type Directory interface {
	Services() []models.Service
	Technicians() []models.Technician
	Technician(id string) (models.Technician, error)
	TechniciansFor(service models.ServiceType) []models.Technician
}

// Catalog holds the service list and technician roster.
type Catalog struct {
	services    []models.Service
	technicians []models.Technician
	index       map[string]int
}

// New validates the given data and builds a Catalog from it.
func New(services []models.Service, technicians []models.Technician) (*Catalog, error) {
	validate := validator.New()

	for _, s := range services {
		if err := validate.Struct(s); err != nil {
			return nil, fmt.Errorf("invalid service %q: %w", s.ID, err)
		}
	}

	index := make(map[string]int, len(technicians))
	for i, t := range technicians {
		if err := validate.Struct(t); err != nil {
			return nil, fmt.Errorf("invalid technician %q: %w", t.ID, err)
		}
		if !t.PriceEstimate.IsPositive() {
			return nil, fmt.Errorf("invalid technician %q: price estimate must be positive", t.ID)
		}
		if _, dup := index[t.ID]; dup {
			return nil, fmt.Errorf("duplicate technician id %q", t.ID)
		}
		index[t.ID] = i
	}

	return &Catalog{
		services:    append([]models.Service(nil), services...),
		technicians: append([]models.Technician(nil), technicians...),
		index:       index,
	}, nil
}

// Default returns the built-in Vijayawada catalog.
func Default() (*Catalog, error) {
	return New(defaultServices, defaultTechnicians)
}

func (c *Catalog) Services() []models.Service {
	return append([]models.Service(nil), c.services...)
}

func (c *Catalog) Technicians() []models.Technician {
	out := make([]models.Technician, len(c.technicians))
	for i, t := range c.technicians {
		out[i] = cloneTechnician(t)
	}
	return out
}

// Technician looks a technician up by id.
func (c *Catalog) Technician(id string) (models.Technician, error) {
	i, ok := c.index[id]
	if !ok {
		return models.Technician{}, fmt.Errorf("%w: %s", ErrTechnicianNotFound, id)
	}
	return cloneTechnician(c.technicians[i]), nil
}

// TechniciansFor returns available technicians offering the given service, in roster order.
func (c *Catalog) TechniciansFor(service models.ServiceType) []models.Technician {
	out := []models.Technician{}
	for _, t := range c.technicians {
		if t.Available && t.Offers(service) {
			out = append(out, cloneTechnician(t))
		}
	}
	return out
}

// ParseServiceType matches s against the known service types, ignoring case
// and surrounding whitespace.
func ParseServiceType(s string) (models.ServiceType, error) {
	s = strings.TrimSpace(s)
	for _, st := range models.AllServiceTypes {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownService, s)
}

func cloneTechnician(t models.Technician) models.Technician {
	t.Specialties = append([]models.ServiceType(nil), t.Specialties...)
	return t
}

var defaultServices = []models.Service{
	{ID: models.ServiceAC, Label: "AC Service", Icon: "snowflake"},
	{ID: models.ServiceFridge, Label: "Fridge", Icon: "thermometer"},
	{ID: models.ServiceWashing, Label: "Washing Machine", Icon: "washing-machine"},
	{ID: models.ServiceRO, Label: "RO Purifier", Icon: "droplets"},
	{ID: models.ServicePlumbing, Label: "Plumbing", Icon: "wrench"},
	{ID: models.ServiceElectrical, Label: "Electrical", Icon: "zap"},
}

var defaultTechnicians = []models.Technician{
	{
		ID:            "T001",
		Name:          "Ramesh Kumar",
		Rating:        4.8,
		JobsCompleted: 124,
		Location:      models.Coordinate{Lat: 16.5082, Lng: 80.6500},
		Specialties:   []models.ServiceType{models.ServiceAC, models.ServiceElectrical},
		Available:     true,
		Distance:      "0.8 km",
		PriceEstimate: decimal.NewFromInt(450),
		Verified:      true,
	},
	{
		ID:            "T002",
		Name:          "Suresh Reddy",
		Rating:        4.5,
		JobsCompleted: 89,
		Location:      models.Coordinate{Lat: 16.5042, Lng: 80.6460},
		Specialties:   []models.ServiceType{models.ServicePlumbing, models.ServiceRO},
		Available:     true,
		Distance:      "1.2 km",
		PriceEstimate: decimal.NewFromInt(350),
		Verified:      true,
	},
	{
		ID:            "T003",
		Name:          "Vijay Singh",
		Rating:        4.9,
		JobsCompleted: 310,
		Location:      models.Coordinate{Lat: 16.5022, Lng: 80.6520},
		Specialties:   []models.ServiceType{models.ServiceFridge, models.ServiceWashing},
		Available:     true,
		Distance:      "2.1 km",
		PriceEstimate: decimal.NewFromInt(500),
		Verified:      true,
	},
	{
		ID:            "T004",
		Name:          "Manoj P.",
		Rating:        4.2,
		JobsCompleted: 45,
		Location:      models.Coordinate{Lat: 16.5092, Lng: 80.6420},
		Specialties:   []models.ServiceType{models.ServiceAC},
		Available:     true,
		Distance:      "0.5 km",
		PriceEstimate: decimal.NewFromInt(400),
		Verified:      true,
	},
}
