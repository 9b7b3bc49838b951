package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	requestdomain "github.com/tanomu-app/tanomu/internal/request/domain"
)

func (s *Server) CreateRequest(c *gin.Context) {
	var req requestdomain.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, requestdomain.ErrInvalidPayload)
		return
	}

	member, ok := s.requireMember(c, req.GroupID)
	if !ok {
		return
	}
	if member.ID != req.SenderMemberID {
		AbortWithError(c, errSenderMismatch)
		return
	}

	req.SenderName = member.DisplayName
	req.Language = requestLanguage(c)

	resp, err := s.requestSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) GetInbox(c *gin.Context) {
	groupID := c.Query("groupId")
	if groupID == "" {
		AbortWithError(c, errGroupIDRequired)
		return
	}
	member, ok := s.requireMember(c, groupID)
	if !ok {
		return
	}

	events, err := s.requestSvc.Inbox(c.Request.Context(), member.ID, groupID, requestLanguage(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) AckRequest(c *gin.Context) {
	member, ok := s.requireDevice(c)
	if !ok {
		return
	}

	resp, err := s.requestSvc.Acknowledge(c.Request.Context(), member.ID, c.Param("requestId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CompleteRequest(c *gin.Context) {
	member, ok := s.requireDevice(c)
	if !ok {
		return
	}

	resp, err := s.requestSvc.Complete(c.Request.Context(), member.ID, c.Param("requestId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
