package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatusResponse is returned by the root endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Root reports that the API is up.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok", Message: "Portfolio API is running"})
}

// Healthz answers container probes.
func Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
