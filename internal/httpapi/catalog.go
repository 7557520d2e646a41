package httpapi

import (
	"net/http"

	"booking-platform/internal/catalog"

	"github.com/gin-gonic/gin"
)

func (h Handlers) CreateService(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req createServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.Catalog.Create(c.Request.Context(), p.ID, catalog.NewService{
		StaffID:      req.StaffID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMins: req.DurationMins,
		PriceMinor:   req.Price,
		Currency:     req.Currency,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Service created successfully", "service": s})
}

// ListServices is public and returns active services only.
func (h Handlers) ListServices(c *gin.Context) {
	list, err := h.Catalog.List(c.Request.Context(), c.Query("businessId"), c.Query("staffId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) ServicesByBusiness(c *gin.Context) {
	list, err := h.Catalog.ByBusiness(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) ServicesByStaff(c *gin.Context) {
	list, err := h.Catalog.ByStaff(c.Request.Context(), c.Param("staffId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) GetService(c *gin.Context) {
	s, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h Handlers) UpdateService(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req updateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.Catalog.Update(c.Request.Context(), p.ID, c.Param("id"), catalog.Update{
		StaffID:      req.StaffID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMins: req.DurationMins,
		PriceMinor:   req.Price,
		Currency:     req.Currency,
		IsActive:     req.IsActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully", "service": s})
}

func (h Handlers) ToggleService(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	s, err := h.Catalog.Toggle(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service status updated", "service": s})
}

func (h Handlers) RemoveService(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	res, err := h.Catalog.Remove(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
