package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/model"
	"portfolio/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ProjectRequest represents a project create or replace request. Omitting
// featured means true.
type ProjectRequest struct {
	Title        string   `json:"title" validate:"max=255"`
	Description  string   `json:"description"`
	Gradient     string   `json:"gradient" validate:"max=255"`
	ProjectURL   *string  `json:"projectUrl" validate:"omitempty,max=1024"`
	Technologies []string `json:"technologies" validate:"dive,max=255"`
	Featured     *bool    `json:"featured"`
	Order        int      `json:"order"`
}

func (r ProjectRequest) input() service.ProjectInput {
	return service.ProjectInput{
		Title:        r.Title,
		Description:  r.Description,
		Gradient:     r.Gradient,
		ProjectURL:   r.ProjectURL,
		Technologies: r.Technologies,
		Featured:     r.Featured,
		Order:        r.Order,
	}
}

// ProjectsResponse wraps the projects list.
type ProjectsResponse struct {
	Projects []model.Project `json:"projects"`
}

// ProjectResponse wraps a single project.
type ProjectResponse struct {
	Project *model.Project `json:"project"`
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {object} ProjectsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ProjectsResponse{Projects: projects})
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param request body ProjectRequest true "Project"
// @Success 200 {object} ProjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	project, err := h.projectService.Create(c.Request().Context(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ProjectResponse{Project: project})
}

// UpdateProject godoc
// @Summary Replace a project
// @Tags projects
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Project ID"
// @Param request body ProjectRequest true "Project"
// @Success 200 {object} ProjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	project, err := h.projectService.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ProjectResponse{Project: project})
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security SessionCookie
// @Param id path string true "Project ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	if err := h.projectService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
