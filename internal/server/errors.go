package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/tanomu-app/tanomu/internal/catalog/domain"
	groupdomain "github.com/tanomu-app/tanomu/internal/group/domain"
	pushdomain "github.com/tanomu-app/tanomu/internal/push/domain"
	requestdomain "github.com/tanomu-app/tanomu/internal/request/domain"
	"gorm.io/gorm"
)

// apiError is the wire shape of every error answer.
type apiError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	ResumeAt string `json:"resumeAt,omitempty"`
}

var (
	errUnauthorized    = errors.New("unauthorized")
	errAdminOnly       = errors.New("admin_only")
	errMemberMismatch  = errors.New("member_mismatch")
	errSenderMismatch  = errors.New("sender_mismatch")
	errGroupIDRequired = errors.New("group_id_required")
)

// ErrorHandlingMiddleware converts errors attached to the gin context into
// JSON error answers, so handlers report failures with AbortWithError and
// never build error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, apiError) {
	switch {
	case errors.Is(err, errUnauthorized), errors.Is(err, groupdomain.ErrUnauthorized):
		return http.StatusUnauthorized, apiError{Code: "UNAUTHORIZED", Message: "unauthorized"}
	case errors.Is(err, errAdminOnly):
		return http.StatusForbidden, apiError{Code: "ADMIN_ONLY", Message: "admin role required"}
	case errors.Is(err, errMemberMismatch):
		return http.StatusForbidden, apiError{Code: "MEMBER_MISMATCH", Message: "member does not match credentials"}
	case errors.Is(err, errSenderMismatch):
		return http.StatusForbidden, apiError{Code: "SENDER_MISMATCH", Message: "sender does not match credentials"}
	case errors.Is(err, errGroupIDRequired):
		return http.StatusBadRequest, apiError{Code: "GROUP_ID_REQUIRED", Message: "groupId is required"}

	case errors.Is(err, groupdomain.ErrInvalidPayload),
		errors.Is(err, catalogdomain.ErrInvalidPayload),
		errors.Is(err, requestdomain.ErrInvalidPayload),
		errors.Is(err, pushdomain.ErrInvalidPayload):
		return http.StatusBadRequest, apiError{Code: "INVALID_PAYLOAD", Message: "invalid payload"}
	case errors.Is(err, groupdomain.ErrGroupNotFound):
		return http.StatusNotFound, apiError{Code: "GROUP_NOT_FOUND", Message: "group not found"}
	case errors.Is(err, groupdomain.ErrInvalidPassphrase):
		return http.StatusForbidden, apiError{Code: "INVALID_PASSPHRASE", Message: "invalid passphrase"}

	case errors.Is(err, catalogdomain.ErrTabNotFound):
		return http.StatusNotFound, apiError{Code: "TAB_NOT_FOUND", Message: "tab not found"}
	case errors.Is(err, catalogdomain.ErrTabNotAccessible):
		return http.StatusForbidden, apiError{Code: "TAB_NOT_ACCESSIBLE", Message: "tab belongs to another group"}
	case errors.Is(err, catalogdomain.ErrTabArchived):
		return http.StatusConflict, apiError{Code: "TAB_ARCHIVED", Message: "tab is archived"}
	case errors.Is(err, catalogdomain.ErrTabNotDeletable):
		return http.StatusForbidden, apiError{Code: "TAB_NOT_DELETABLE", Message: "tab cannot be deleted"}
	case errors.Is(err, catalogdomain.ErrItemNotFound):
		return http.StatusNotFound, apiError{Code: "ITEM_NOT_FOUND", Message: "item not found"}
	case errors.Is(err, catalogdomain.ErrItemNotDeletable):
		return http.StatusForbidden, apiError{Code: "ITEM_NOT_DELETABLE", Message: "item cannot be deleted"}

	case errors.Is(err, requestdomain.ErrInvalidStore):
		return http.StatusBadRequest, apiError{Code: "INVALID_STORE_ID", Message: "invalid store id"}
	case errors.Is(err, requestdomain.ErrInvalidItem):
		return http.StatusBadRequest, apiError{Code: "INVALID_ITEM_ID", Message: "invalid item id"}
	case errors.Is(err, requestdomain.ErrRequestNotFound):
		return http.StatusNotFound, apiError{Code: "REQUEST_NOT_FOUND", Message: "request not found"}

	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, apiError{Code: "NOT_FOUND", Message: "not found"}
	default:
		return http.StatusInternalServerError, apiError{Code: "INTERNAL_SERVER_ERROR", Message: "internal server error"}
	}
}
