package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Scrimzay/plunderpunk/internal/board"
	"github.com/Scrimzay/plunderpunk/internal/lobby"
	"github.com/Scrimzay/plunderpunk/internal/session"
	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type playerRequest struct {
	Player string `json:"player" binding:"required"`
}

type createRequest struct {
	Player string `json:"player" binding:"required"`
	Layout string `json:"layout"`
}

type moveRequest struct {
	Player string `json:"player" binding:"required"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type engageRequest struct {
	Player string `json:"player" binding:"required"`
	Target int    `json:"target" binding:"required"`
}

func SetupRouter(registry *session.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/layouts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"layouts": board.Layouts()})
	})

	api := r.Group("/api", requireGameCode())
	{
		api.POST("/games", createHandler(registry))
		api.GET("/games/recent", recentHandler(registry))
		api.GET("/games/:id", gameHandler(registry))
		api.POST("/games/:id/join", joinHandler(registry))
		api.POST("/games/:id/move", moveHandler(registry))
		api.POST("/games/:id/engage", engageHandler(registry))
		api.POST("/games/:id/pass", passHandler(registry))
		api.POST("/games/:id/pause", controlHandler(registry, (*session.Session).Pause))
		api.POST("/games/:id/resume", controlHandler(registry, (*session.Session).Resume))
		api.POST("/games/:id/restart", controlHandler(registry, (*session.Session).Restart))
		api.GET("/games/:id/cells/:x/:y", cellHandler(registry))
		api.GET("/profiles/:name", profileHandler(registry))
	}

	r.GET("/ws/:id", requireGameCode(), HandleWebsocket(registry))

	return r
}

func requestLogger() gin.HandlerFunc {
	log := logger.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("Request")
	}
}

// requireGameCode turns away :id values no game could have before any lookup.
func requireGameCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Param("id"); id != "" && !lobby.ValidCode(id) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": lobby.ErrNotFound.Error()})
			return
		}
		c.Next()
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrUnknownLayout):
		return http.StatusBadRequest
	case errors.Is(err, lobby.ErrNotFound), errors.Is(err, board.ErrUnknownShip):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNotSeated), errors.Is(err, board.ErrUnknownPlayer):
		return http.StatusForbidden
	case errors.Is(err, lobby.ErrGameFull), errors.Is(err, board.ErrGameFull),
		errors.Is(err, lobby.ErrGameFinished),
		errors.Is(err, board.ErrNotPlaying), errors.Is(err, board.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, board.ErrOutOfBounds), errors.Is(err, board.ErrTooFar),
		errors.Is(err, board.ErrCellOccupied),
		errors.Is(err, board.ErrInvalidTarget), errors.Is(err, board.ErrTargetOutOfRange),
		errors.Is(err, board.ErrShipSunk):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Component("http").WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func createHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, err := registry.Create(c.Request.Context(), req.Player, req.Layout)
		if err != nil {
			abortWithError(c, err)
			return
		}
		playerID, _ := s.PlayerID(req.Player)
		c.JSON(http.StatusCreated, gin.H{
			"id":       s.ID,
			"playerId": playerID,
			"game":     s.Snapshot(),
		})
	}
}

func joinHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, p, err := registry.Join(c.Request.Context(), c.Param("id"), req.Player)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":       s.ID,
			"playerId": p.ID,
			"game":     s.Snapshot(),
		})
	}
}

func recentHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		games, err := registry.Recent(c.Request.Context(), limit)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if games == nil {
			games = []lobby.Game{}
		}
		c.JSON(http.StatusOK, gin.H{"games": games})
	}
}

func gameHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := registry.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

func moveHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req moveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, err := registry.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		res, err := s.Move(req.Player, req.X, req.Y)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func engageHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req engageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, err := registry.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		res, err := s.Engage(req.Player, req.Target)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func passHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req playerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, err := registry.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := s.Pass(req.Player); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// controlHandler serves pause, resume and restart, which act on the whole table.
func controlHandler(registry *session.Registry, action func(*session.Session) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := registry.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := action(s); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

func cellHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		x, errX := strconv.Atoi(c.Param("x"))
		y, errY := strconv.Atoi(c.Param("y"))
		if errX != nil || errY != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "cell coordinates must be integers"})
			return
		}
		s, err := registry.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		view, err := s.Inspect(x, y)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func profileHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		pd, err := registry.Profile(c.Param("name"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, pd)
	}
}
