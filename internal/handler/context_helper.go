package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/unsis-dev/exam-calendar-api/internal/middleware"
	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.AuthClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

// programFromContext returns the program the caller is bound to.
func programFromContext(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil {
		return ""
	}
	return claims.ProgramID
}
