package transport

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "vision-hud/internal/application"
	"vision-hud/internal/domain/entity"
	"vision-hud/internal/logger"
)

// maxUploadSize ограничение тела запроса /detect
const maxUploadSize = 10 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type DetectResponse struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	VertexCount int `json:"vertex_count"`
}

// NewHandler собирает HTTP-интерфейс состояния HUD
func NewHandler(hud *app.HUDService, detect *app.DetectService) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), errorHandler())

	r.GET("/health", healthCheck)
	r.GET("/status", status(hud))
	r.GET("/snapshot.png", snapshot(hud))
	r.POST("/detect", detectImage(detect))

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "available",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func status(hud *app.HUDService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, hud.Status())
	}
}

func snapshot(hud *app.HUDService) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := hud.SnapshotPNG()
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Data(http.StatusOK, "image/png", data)
	}
}

func detectImage(detect *app.DetectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize))
		if err != nil {
			respondError(c, http.StatusRequestEntityTooLarge, "read request body", err)
			return
		}
		if len(body) == 0 {
			respondError(c, http.StatusBadRequest, "empty request body", errors.New("image is required"))
			return
		}

		out, err := detect.DetectImage(c.Request.Context(), body)
		if err != nil {
			_ = c.Error(err)
			return
		}

		if c.Query("format") == "png" {
			c.Data(http.StatusOK, "image/png", out.Highlighted)
			return
		}
		c.JSON(http.StatusOK, DetectResponse{
			Width:       out.Width,
			Height:      out.Height,
			VertexCount: out.Vertices.Count(),
		})
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	switch {
	case errors.Is(err, app.ErrUnsupportedImage):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidDimensions), errors.Is(err, entity.ErrFrameSizeMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrVisionDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: message + ": " + err.Error(),
	})
}
