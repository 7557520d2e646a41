package httpapi

import (
	"net/http"
	"strconv"

	"booking-platform/internal/users"

	"github.com/gin-gonic/gin"
)

func (h Handlers) GetProfile(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	prof, err := h.Users.Profile(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (h Handlers) UpdateProfile(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	prof, err := h.Users.UpdateProfile(c.Request.Context(), p.ID, users.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!", "user": prof})
}

// ListUsers is admin only; paging via ?limit=&offset=.
func (h Handlers) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	list, err := h.Users.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": list})
}

func (h Handlers) Dashboard(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Welcome!", "role": p.Role})
}

func (h Handlers) Bookings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Bookings management"})
}
