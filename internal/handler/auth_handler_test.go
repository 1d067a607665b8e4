package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ncaillard/dentoplan-api/internal/dto"
	appErrors "github.com/ncaillard/dentoplan-api/pkg/errors"
)

type authMock struct {
	fail bool
}

func (m *authMock) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.fail {
		return nil, appErrors.ErrInvalidCredentials
	}
	return &dto.LoginResponse{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 3600}, nil
}

func TestLoginEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&authMock{})

	req, err := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"username":"admin","password":"secret"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(&authMock{fail: true})

	req, err := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{"username":"admin","password":"wrong"}`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
