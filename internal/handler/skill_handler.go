package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/model"
	"portfolio/internal/service"
)

// SkillHandler handles skill endpoints.
type SkillHandler struct {
	skillService service.SkillService
}

// NewSkillHandler creates a new skill handler.
func NewSkillHandler(skillService service.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// SkillRequest represents a skill create or replace request.
type SkillRequest struct {
	Name        string `json:"name" validate:"max=255"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl" validate:"max=1024"`
	Type        string `json:"type" validate:"omitempty,oneof=image font-awesome"`
	Color       string `json:"color" validate:"max=255"`
	Category    string `json:"category" validate:"max=64"`
	Order       int    `json:"order"`
}

func (r SkillRequest) input() service.SkillInput {
	return service.SkillInput{
		Name:        r.Name,
		Description: r.Description,
		IconURL:     r.IconURL,
		Type:        model.SkillType(r.Type),
		Color:       r.Color,
		Category:    r.Category,
		Order:       r.Order,
	}
}

// SkillsResponse wraps the skills list.
type SkillsResponse struct {
	Skills []model.Skill `json:"skills"`
}

// SkillResponse wraps a single skill.
type SkillResponse struct {
	Skill *model.Skill `json:"skill"`
}

// ListSkills godoc
// @Summary List skills
// @Tags skills
// @Produce json
// @Success 200 {object} SkillsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /skills [get]
func (h *SkillHandler) ListSkills(c echo.Context) error {
	skills, err := h.skillService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SkillsResponse{Skills: skills})
}

// CreateSkill godoc
// @Summary Create a skill
// @Tags skills
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body SkillRequest true "Skill"
// @Success 200 {object} SkillResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /skills [post]
func (h *SkillHandler) CreateSkill(c echo.Context) error {
	var req SkillRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	skill, err := h.skillService.Create(c.Request().Context(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SkillResponse{Skill: skill})
}

// UpdateSkill godoc
// @Summary Replace a skill
// @Tags skills
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Skill ID"
// @Param request body SkillRequest true "Skill"
// @Success 200 {object} SkillResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /skills/{id} [put]
func (h *SkillHandler) UpdateSkill(c echo.Context) error {
	var req SkillRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	skill, err := h.skillService.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SkillResponse{Skill: skill})
}

// DeleteSkill godoc
// @Summary Delete a skill
// @Tags skills
// @Produce json
// @Security SessionCookie
// @Param id path string true "Skill ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /skills/{id} [delete]
func (h *SkillHandler) DeleteSkill(c echo.Context) error {
	if err := h.skillService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
