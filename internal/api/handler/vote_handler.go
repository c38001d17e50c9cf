package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/api/metrics"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

type castVoteRequest struct {
	Ballot string `json:"ballot" validate:"required,oneof=in_favor against abstain"`
}

// VoteHandler handles HTTP requests for the voting feature.
type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

// Cast records or replaces the caller's ballot on a project.
//
// @Summary      Cast a ballot
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Project ID"
// @Param        body  body      castVoteRequest  true  "Ballot"
// @Success      201   {object}  map[string]any
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id}/votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	vote, err := h.service.CastVote(c.Request().Context(), ports.CastVoteInput{
		ProjectID: c.Param("id"),
		VoterID:   sess.Principal.ID,
		Ballot:    req.Ballot,
	})
	if err != nil {
		return err
	}

	metrics.VotesCastTotal.WithLabelValues(string(vote.Ballot)).Inc()
	return c.JSON(http.StatusCreated, vote)
}

// Own returns the caller's ballot on a project.
//
// @Summary      Get own ballot
// @Tags         votes
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/votes/me [get]
func (h *VoteHandler) Own(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	vote, err := h.service.GetOwnVote(c.Request().Context(), c.Param("id"), sess.Principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vote)
}

// Tally returns the aggregated ballots for a project.
//
// @Summary      Get the vote tally
// @Tags         votes
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id}/votes/tally [get]
func (h *VoteHandler) Tally(c echo.Context) error {
	tally, err := h.service.GetTally(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tally)
}
