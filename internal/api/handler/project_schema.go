package handler

import "time"

type createProjectRequest struct {
	Name        string `json:"name"         validate:"required"`
	City        string `json:"city"         validate:"required"`
	Address     string `json:"address"      validate:"required"`
	Track       string `json:"track"        validate:"required,oneof=pinui_binui tama_38"`
	Description string `json:"description"`
	UnitsBefore int    `json:"units_before" validate:"required,gt=0"`
	UnitsAfter  int    `json:"units_after"  validate:"required,gt=0"`
	DeveloperID string `json:"developer_id"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	Status      *string `json:"status" validate:"omitempty,oneof=planning voting approved construction completed"`
	Description *string `json:"description"`
	UnitsAfter  *int    `json:"units_after" validate:"omitempty,gt=0"`
}

type projectSummaryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Track       string    `json:"track"`
	Status      string    `json:"status"`
	UnitsBefore int       `json:"units_before"`
	UnitsAfter  int       `json:"units_after"`
	CreatedAt   time.Time `json:"created_at"`
}

type listProjectsResponse struct {
	Items      []projectSummaryResponse `json:"items"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}
