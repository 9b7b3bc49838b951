package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pushdomain "github.com/tanomu-app/tanomu/internal/push/domain"
)

func (s *Server) SubscribePush(c *gin.Context) {
	var req pushdomain.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, pushdomain.ErrInvalidPayload)
		return
	}

	member, ok := s.requireMember(c, req.GroupID)
	if !ok {
		return
	}
	if member.ID != req.MemberID {
		AbortWithError(c, errMemberMismatch)
		return
	}

	if !s.consumeQuota(c) {
		return
	}

	if err := s.pushSvc.Subscribe(c.Request.Context(), req); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
