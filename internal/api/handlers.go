package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avenkat/caprelay/internal/database"
	apperrors "github.com/avenkat/caprelay/internal/errors"
	"github.com/avenkat/caprelay/internal/forwarder"
	"github.com/avenkat/caprelay/internal/models"
)

func (s *Server) healthCheck(c *gin.Context) {
	if err := database.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

func (s *Server) getStats(c *gin.Context) {
	snap := s.stats.Snapshot()

	c.JSON(http.StatusOK, StatsResponse{
		Processed:     snap.Processed,
		Formatted:     snap.Formatted,
		Forwarded:     snap.Forwarded,
		ForwardFailed: snap.ForwardFailed,
		UptimeSeconds: int64(snap.Uptime.Seconds()),
	})
}

func (s *Server) formatCaption(c *gin.Context) {
	var req FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	formatted, err := s.formatter.Format(req.Caption)
	if err != nil {
		if apperrors.IsEmptyCaption(err) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "empty caption",
				Message: "nothing to format",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "format failed",
			Message: err.Error(),
		})
		return
	}

	resp := FormatResponse{Formatted: formatted}
	if req.Forward {
		result := s.forwarder.Forward(c.Request.Context(), s.settings.DumpTarget(), formatted)
		s.recordForward(result)
		resp.Forward = &result
	}

	c.JSON(http.StatusOK, resp)
}

// recordForward writes one activity entry per forwarding call: delivered,
// skipped (no destination configured), or failed.
func (s *Server) recordForward(result forwarder.Result) {
	if s.store == nil {
		return
	}

	switch {
	case result.Delivered:
		s.store.RecordActivity(models.ActionForward, models.StatusSuccess, result.Detail)
	case result.Attempts == 0:
		s.store.RecordActivity(models.ActionForward, models.StatusSkipped, result.Detail)
	default:
		s.store.RecordActivity(models.ActionForward, models.StatusFailed, result.Detail)
	}
}

func (s *Server) runCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	reply, err := s.dispatcher.Dispatch(c.Request.Context(), req.Command, req.Args)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "command failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, CommandResponse{Reply: reply})
}
