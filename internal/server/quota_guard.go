package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	quotadomain "github.com/tanomu-app/tanomu/internal/quota/domain"
	"go.uber.org/zap"
)

// QuotaGuard admits the request through the daily write gate. Every guarded
// request consumes one unit; when the gate is paused or unreachable the
// write is rejected.
func (s *Server) QuotaGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.consumeQuota(c) {
			return
		}
		c.Next()
	}
}

// consumeQuota calls the gate and writes the rejection answer itself. It
// returns false when the caller must not proceed.
func (s *Server) consumeQuota(c *gin.Context) bool {
	now := s.clock.Now()
	record, err := s.gate.Consume(c.Request.Context(), quotadomain.ConsumeInput{
		DayKey:   s.window.DayKey(now),
		Limit:    s.cfg.Quota.DailyWriteLimit,
		ResumeAt: s.window.NextMidnightISO(now),
	})
	if err != nil {
		// Unknown gate state: reject the write rather than risk
		// overshooting the budget.
		s.metrics.QuotaConsumeError()
		s.log.Error("quota gate unavailable", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: "internal server error",
		})
		return false
	}

	if record.State == quotadomain.StatePaused {
		s.metrics.QuotaConsumePaused()
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, apiError{
			Code:     "SERVICE_PAUSED_DAILY_QUOTA",
			Message:  "Daily write quota reached",
			ResumeAt: record.ResumeAt,
		})
		return false
	}

	s.metrics.QuotaConsumeAllowed()
	return true
}

// ActorLimitGuard slows a single address down on group create/join. The
// limiter is advisory: when its storage fails the request proceeds, the
// global gate still protects the deployment.
func (s *Server) ActorLimitGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorKey := "join-create:" + actorIP(c)
		allowed, err := s.actorLimit.Allow(c.Request.Context(), actorKey)
		if err != nil {
			s.log.Warn("actor limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			s.metrics.ActorLimitDenied()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiError{
				Code:    "TOO_MANY_REQUESTS",
				Message: "Too many create/join requests for today",
			})
			return
		}
		c.Next()
	}
}
