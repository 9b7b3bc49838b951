package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
	groupdomain "github.com/tanomu-app/tanomu/internal/group/domain"
)

func (s *Server) GetCatalog(c *gin.Context) {
	layout, err := s.catalogSvc.SystemCatalog(c.Request.Context(), requestLanguage(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, layout)
}

func (s *Server) GetGroupLayout(c *gin.Context) {
	groupID := c.Param("groupId")
	if _, ok := s.requireMember(c, groupID); !ok {
		return
	}

	layout, err := s.catalogSvc.GroupLayout(c.Request.Context(), groupID, requestLanguage(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, layout)
}

// requireAdmin authenticates and additionally demands the admin role, the
// precondition for catalog edits.
func (s *Server) requireAdmin(c *gin.Context, groupID string) bool {
	member, ok := s.requireMember(c, groupID)
	if !ok {
		return false
	}
	if member.Role != groupdomain.RoleAdmin {
		AbortWithError(c, errAdminOnly)
		return false
	}
	return true
}

func (s *Server) CreateCustomTab(c *gin.Context) {
	groupID := c.Param("groupId")
	if !s.requireAdmin(c, groupID) {
		return
	}
	if !s.consumeQuota(c) {
		return
	}

	var req catalogdomain.CreateTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, catalogdomain.ErrInvalidPayload)
		return
	}
	req.GroupID = groupID

	tab, err := s.catalogSvc.CreateTab(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tab)
}

func (s *Server) CreateCustomItem(c *gin.Context) {
	groupID := c.Param("groupId")
	if !s.requireAdmin(c, groupID) {
		return
	}
	if !s.consumeQuota(c) {
		return
	}

	var req catalogdomain.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, catalogdomain.ErrInvalidPayload)
		return
	}
	req.GroupID = groupID

	item, err := s.catalogSvc.CreateItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) DeleteCustomTab(c *gin.Context) {
	groupID := c.Param("groupId")
	if !s.requireAdmin(c, groupID) {
		return
	}
	if !s.consumeQuota(c) {
		return
	}

	if err := s.catalogSvc.ArchiveTab(c.Request.Context(), groupID, c.Param("tabId")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) DeleteCustomItem(c *gin.Context) {
	groupID := c.Param("groupId")
	if !s.requireAdmin(c, groupID) {
		return
	}
	if !s.consumeQuota(c) {
		return
	}

	if err := s.catalogSvc.ArchiveItem(c.Request.Context(), groupID, c.Param("itemId")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
