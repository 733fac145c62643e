package handlers

import (
	"net/http"

	"vijayfix/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the service list and technician roster.
type CatalogHandler struct {
	Directory catalog.Directory
}

func NewCatalogHandler(dir catalog.Directory) *CatalogHandler {
	return &CatalogHandler{Directory: dir}
}

func (h *CatalogHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Directory.Services())
}

// GetTechnicians lists technicians, filtered by ?service= when present.
func (h *CatalogHandler) GetTechnicians(c *gin.Context) {
	service := c.Query("service")
	if service == "" {
		c.JSON(http.StatusOK, h.Directory.Technicians())
		return
	}
	st, err := catalog.ParseServiceType(service)
	if err != nil {
		respondError(c, "Unknown service", err)
		return
	}
	c.JSON(http.StatusOK, h.Directory.TechniciansFor(st))
}

func (h *CatalogHandler) GetTechnician(c *gin.Context) {
	tech, err := h.Directory.Technician(c.Param("id"))
	if err != nil {
		respondError(c, "Technician not found", err)
		return
	}
	c.JSON(http.StatusOK, tech)
}
