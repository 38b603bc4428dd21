package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-proxy/internal/services"
	"github.com/jstittsworth/fpl-proxy/pkg/utils"
)

type FixtureHandler struct {
	data   services.FPLDataSource
	logger *logrus.Logger
}

func NewFixtureHandler(data services.FPLDataSource, logger *logrus.Logger) *FixtureHandler {
	return &FixtureHandler{
		data:   data,
		logger: logger,
	}
}

// GetTeamFixtures returns the next five fixtures of a team with opponent strength data
func (h *FixtureHandler) GetTeamFixtures(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("teamId"))
	if err != nil || teamID <= 0 {
		utils.SendBadRequest(c, utils.ErrCodeInvalidTeamID, "Team id must be a positive number")
		return
	}

	bootstrap, fixtures, err := services.LoadBootstrapAndFixtures(c.Request.Context(), h.data)
	if err != nil {
		requestLogger(h.logger, c).WithError(err).WithField("team_id", teamID).Error("Failed to load team fixtures")
		utils.SendInternalError(c)
		return
	}

	resp, ok := services.BuildTeamFixtures(bootstrap, fixtures, teamID, services.DefaultFixtureLimit)
	if !ok {
		utils.SendNotFound(c, utils.ErrCodeTeamNotFound, "Team not found")
		return
	}

	utils.SendJSON(c, resp)
}
