package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"booking-platform/internal/auth"
	"booking-platform/internal/business"
	"booking-platform/internal/catalog"
	"booking-platform/internal/rbac"
	"booking-platform/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{auth.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{users.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{auth.ErrInvalidRefreshToken, http.StatusUnauthorized, "invalid refresh token"},
		{users.ErrNotFound, http.StatusNotFound, "user not found"},
		{business.ErrBusinessNotFound, http.StatusNotFound, "business not found, set up your business first"},
		{business.ErrBusinessExists, http.StatusConflict, "you already have a business set up"},
		{business.ErrNotYourStaff, http.StatusForbidden, "you can only manage staff of your own business"},
		{business.ErrInviteSelf, http.StatusBadRequest, "you cannot invite yourself as staff"},
		{catalog.ErrServiceNotFound, http.StatusNotFound, "service not found"},
		{catalog.ErrDuplicateName, http.StatusConflict, "service with this name already exists for this staff member"},
		{catalog.ErrStaffInactive, http.StatusBadRequest, "cannot assign services to inactive staff"},
		{fmt.Errorf("lookup email: %w", errors.New("connection reset")), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeError(c, tc.err)

		require.Equal(t, tc.status, w.Code, tc.err.Error())
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, tc.msg, body["error"], tc.err.Error())
	}
}

func TestWriteError_Forbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := rbac.Authorize(auth.Principal{ID: "u1", Role: rbac.RoleRegular}, true, rbac.Requirement{rbac.RoleAdmin})
	writeError(c, err)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), `"required_roles":["admin"]`)
}

func TestOutcome(t *testing.T) {
	require.Equal(t, "success", outcome(nil))
	require.Equal(t, "email_taken", outcome(auth.ErrEmailTaken))
	require.Equal(t, "invalid_credentials", outcome(auth.ErrInvalidCredentials))
	require.Equal(t, "invalid_token", outcome(auth.ErrInvalidRefreshToken))
	require.Equal(t, "error", outcome(errors.New("boom")))
}
