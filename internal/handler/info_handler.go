package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/service"
)

// InfoHandler handles the about and contact key/value sections.
type InfoHandler struct {
	aboutService   service.InfoService
	contactService service.InfoService
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(aboutService, contactService service.InfoService) *InfoHandler {
	return &InfoHandler{aboutService: aboutService, contactService: contactService}
}

// InfoRequest sets one field. A missing value is rejected; an empty string is allowed.
type InfoRequest struct {
	Key   string  `json:"key" validate:"max=255"`
	Value *string `json:"value"`
}

// AboutResponse wraps the about fields.
type AboutResponse struct {
	AboutInfo map[string]string `json:"aboutInfo"`
}

// ContactResponse wraps the contact fields.
type ContactResponse struct {
	ContactInfo map[string]string `json:"contactInfo"`
}

// GetAbout godoc
// @Summary Get about fields
// @Tags about
// @Produce json
// @Success 200 {object} AboutResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /about [get]
func (h *InfoHandler) GetAbout(c echo.Context) error {
	info, err := h.aboutService.GetAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, AboutResponse{AboutInfo: info})
}

// UpdateAbout godoc
// @Summary Set an about field
// @Tags about
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body InfoRequest true "Field"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /about [put]
func (h *InfoHandler) UpdateAbout(c echo.Context) error {
	return h.upsert(c, h.aboutService)
}

// GetContact godoc
// @Summary Get contact fields
// @Tags contact
// @Produce json
// @Success 200 {object} ContactResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact-info [get]
func (h *InfoHandler) GetContact(c echo.Context) error {
	info, err := h.contactService.GetAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ContactResponse{ContactInfo: info})
}

// UpdateContact godoc
// @Summary Set a contact field
// @Tags contact
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body InfoRequest true "Field"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact-info [put]
func (h *InfoHandler) UpdateContact(c echo.Context) error {
	return h.upsert(c, h.contactService)
}

func (h *InfoHandler) upsert(c echo.Context, svc service.InfoService) error {
	var req InfoRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if err := svc.Upsert(c.Request().Context(), req.Key, req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
