package httpapi

import (
	"net/http"

	"booking-platform/internal/business"

	"github.com/gin-gonic/gin"
)

func (h Handlers) CreateBusiness(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req createBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Business.Create(c.Request.Context(), p.ID, business.NewBusiness{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Timezone:    req.Timezone,
		Currency:    req.Currency,
		Hours:       req.Hours,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Business created successfully!", "business": b})
}

func (h Handlers) UpdateBusiness(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req updateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.Business.Update(c.Request.Context(), p.ID, business.Update{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Timezone:    req.Timezone,
		Currency:    req.Currency,
		Hours:       req.Hours,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business updated successfully!", "business": b})
}

func (h Handlers) BusinessProfile(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	prof, err := h.Business.Profile(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

// --- Staff ---

func (h Handlers) InviteStaff(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req inviteStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.Business.InviteStaff(c.Request.Context(), actorOf(c, p), business.InviteInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		Bio:       req.Bio,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Staff invited successfully!", "staff": st})
}

func (h Handlers) ListStaff(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	list, err := h.Business.ListStaff(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h Handlers) UpdateStaff(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req updateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	st, err := h.Business.UpdateStaff(c.Request.Context(), p.ID, c.Param("staffId"), business.StaffUpdate{
		Position: req.Position,
		Bio:      req.Bio,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff updated successfully!", "staff": st})
}

func (h Handlers) RemoveStaff(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	res, err := h.Business.RemoveStaff(c.Request.Context(), actorOf(c, p), c.Param("staffId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
