package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	quotadomain "github.com/tanomu-app/tanomu/internal/quota/domain"
	"go.uber.org/zap"
)

type quotaStatusResponse struct {
	State    quotadomain.State `json:"state"`
	ResumeAt string            `json:"resumeAt"`
	Count    int               `json:"count"`
	Limit    int               `json:"limit"`
}

// GetQuotaStatus reports the current window without consuming from it. A
// gate that has never been written to answers as a fresh open window.
func (s *Server) GetQuotaStatus(c *gin.Context) {
	now := s.clock.Now()
	fresh := quotaStatusResponse{
		State:    quotadomain.StateOpen,
		ResumeAt: s.window.NextMidnightISO(now),
		Count:    0,
		Limit:    s.cfg.Quota.DailyWriteLimit,
	}

	record, ok, err := s.gate.Status(c.Request.Context())
	if err != nil {
		// Status is read-only; answer with the synthetic fresh window
		// rather than failing the poll.
		s.log.Warn("quota status unavailable", zap.Error(err))
		c.JSON(http.StatusOK, fresh)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, fresh)
		return
	}

	resp := quotaStatusResponse{
		State:    record.State,
		ResumeAt: record.ResumeAt,
		Count:    record.Count,
		Limit:    record.Limit,
	}
	if resp.ResumeAt == "" {
		resp.ResumeAt = fresh.ResumeAt
	}
	c.JSON(http.StatusOK, resp)
}
