package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	groupdomain "github.com/tanomu-app/tanomu/internal/group/domain"
)

func (s *Server) CreateGroup(c *gin.Context) {
	var req groupdomain.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, groupdomain.ErrInvalidPayload)
		return
	}

	resp, err := s.groupSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) JoinGroup(c *gin.Context) {
	var req groupdomain.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, groupdomain.ErrInvalidPayload)
		return
	}

	resp, err := s.groupSvc.Join(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusCreated
	if resp.AlreadyMember {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}
