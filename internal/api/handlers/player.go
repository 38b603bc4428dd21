package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-proxy/internal/api/middleware"
	"github.com/jstittsworth/fpl-proxy/internal/services"
	"github.com/jstittsworth/fpl-proxy/pkg/logger"
	"github.com/jstittsworth/fpl-proxy/pkg/utils"
)

type PlayerHandler struct {
	data   services.FPLDataSource
	logger *logrus.Logger
}

func NewPlayerHandler(data services.FPLDataSource, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		data:   data,
		logger: logger,
	}
}

// GetPlayers returns every projected player plus the id/name team list
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	bootstrap, err := h.data.Bootstrap(c.Request.Context())
	if err != nil {
		requestLogger(h.logger, c).WithError(err).Error("Failed to load players")
		utils.SendInternalError(c)
		return
	}

	utils.SendJSON(c, services.BuildPlayersResponse(bootstrap))
}

// GetPlayer returns a single projected player by upstream id. Besides 404 for an
// unknown id and 500 on upstream failure, a non-numeric id is rejected with 400.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, utils.ErrCodeInvalidPlayerID, "Player id must be a number")
		return
	}

	bootstrap, err := h.data.Bootstrap(c.Request.Context())
	if err != nil {
		requestLogger(h.logger, c).WithError(err).WithField("player_id", playerID).Error("Failed to load player")
		utils.SendInternalError(c)
		return
	}

	player, ok := services.FindPlayerView(bootstrap, playerID)
	if !ok {
		utils.SendNotFound(c, utils.ErrCodePlayerNotFound, "Player not found")
		return
	}

	utils.SendJSON(c, player)
}

func requestLogger(log *logrus.Logger, c *gin.Context) *logrus.Entry {
	return logger.WithRequestContext(log, middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path)
}
