package handlers

import (
	"net/http"

	"vijayfix/models"
	"vijayfix/services/catalog"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminHandler exposes the platform overview screen.
type AdminHandler struct {
	Controller LifecycleController
	Directory  catalog.Directory
}

func NewAdminHandler(ctrl LifecycleController, dir catalog.Directory) *AdminHandler {
	return &AdminHandler{Controller: ctrl, Directory: dir}
}

// Overview is the admin dashboard payload.
type Overview struct {
	TotalBookings     int                          `json:"totalBookings"`
	ByStatus          map[models.BookingStatus]int `json:"byStatus"`
	CompletedRevenue  decimal.Decimal              `json:"completedRevenue"`
	AverageRating     float64                      `json:"averageRating"`
	ActiveTechnicians int                          `json:"activeTechnicians"`
	Technicians       []models.Technician          `json:"technicians"`
}

// GetOverview summarises bookings and the technician roster.
func (ah *AdminHandler) GetOverview(c *gin.Context) {
	bookings := ah.Controller.Bookings()
	technicians := ah.Directory.Technicians()

	ov := Overview{
		TotalBookings:    len(bookings),
		ByStatus:         map[models.BookingStatus]int{},
		CompletedRevenue: decimal.Zero,
		Technicians:      technicians,
	}
	for _, b := range bookings {
		ov.ByStatus[b.Status]++
		if b.Status == models.BookingCompleted {
			ov.CompletedRevenue = ov.CompletedRevenue.Add(b.TotalAmount)
		}
	}

	var ratingSum float64
	for _, t := range technicians {
		if t.Available {
			ov.ActiveTechnicians++
		}
		ratingSum += t.Rating
	}
	if len(technicians) > 0 {
		ov.AverageRating = ratingSum / float64(len(technicians))
	}

	c.JSON(http.StatusOK, ov)
}
