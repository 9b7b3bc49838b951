// Package httpapi exposes the quota gate over HTTP so the gate can run as
// its own process and so handlers in other processes reach it through the
// same interface.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanomu-app/tanomu/internal/quota/domain"
	"github.com/tanomu-app/tanomu/internal/quota/gate"
)

const (
	codeInvalidConsume = "INVALID_CONSUME_PAYLOAD"
	codeInvalidReset   = "INVALID_RESET_PAYLOAD"
)

type errorBody struct {
	Code string `json:"code"`
}

type statusBody struct {
	DayKey   *string      `json:"dayKey"`
	Count    int          `json:"count"`
	Limit    int          `json:"limit"`
	State    domain.State `json:"state"`
	ResumeAt *string      `json:"resumeAt"`
}

// RegisterRoutes mounts the gate transport under router. The gate instance
// is addressed by name in the path; unknown names lazily create a gate, the
// same way the original actor namespace behaves.
func RegisterRoutes(router gin.IRouter, registry *gate.Registry) {
	group := router.Group("/internal/quota/:name")
	group.POST("/consume", consumeHandler(registry))
	group.POST("/force-reset", forceResetHandler(registry))
	group.GET("/status", statusHandler(registry))
}

func consumeHandler(registry *gate.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.ConsumeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Code: codeInvalidConsume})
			return
		}

		record, err := registry.Get(c.Param("name")).Consume(c.Request.Context(), in)
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, errorBody{Code: codeInvalidConsume})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorBody{Code: "QUOTA_STORE_FAILURE"})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func forceResetHandler(registry *gate.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.ConsumeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Code: codeInvalidReset})
			return
		}

		record, err := registry.Get(c.Param("name")).ForceReset(c.Request.Context(), in)
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, errorBody{Code: codeInvalidReset})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorBody{Code: "QUOTA_STORE_FAILURE"})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

func statusHandler(registry *gate.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, ok, err := registry.Get(c.Param("name")).Status(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorBody{Code: "QUOTA_STORE_FAILURE"})
			return
		}
		if !ok {
			// Never-initialized gates answer with the empty sentinel.
			c.JSON(http.StatusOK, statusBody{State: domain.StateOpen})
			return
		}
		c.JSON(http.StatusOK, record)
	}
}
