package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

// ProjectHandler handles HTTP requests for renewal projects.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create registers a new project.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Track:       req.Track,
		Description: req.Description,
		UnitsBefore: req.UnitsBefore,
		UnitsAfter:  req.UnitsAfter,
		DeveloperID: req.DeveloperID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, project)
}

// Get returns one project by ID.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Update applies a partial update to a project.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  errorResponse
// @Router       /v1/projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	project, err := h.service.UpdateProject(c.Request().Context(), c.Param("id"), ports.UpdateProjectInput{
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Status:      req.Status,
		Description: req.Description,
		UnitsAfter:  req.UnitsAfter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete removes a project.
//
// @Summary      Delete a project
// @Tags         projects
// @Param        id  path  string  true  "Project ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns a page of projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        city    query     string  false  "Filter by city"
// @Param        status  query     string  false  "Filter by status"
// @Param        track   query     string  false  "Filter by track"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listProjectsResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListProjects(c.Request().Context(), ports.ListProjectsInput{
		City:        c.QueryParam("city"),
		Status:      c.QueryParam("status"),
		Track:       c.QueryParam("track"),
		DeveloperID: c.QueryParam("developer_id"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	items := make([]projectSummaryResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, projectSummaryResponse{
			ID:          p.ID,
			Name:        p.Name,
			City:        p.City,
			Track:       p.Track,
			Status:      p.Status,
			UnitsBefore: p.UnitsBefore,
			UnitsAfter:  p.UnitsAfter,
			CreatedAt:   p.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, listProjectsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
