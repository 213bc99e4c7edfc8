package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stanielhristov/medical-reservation-sub004/internal/security"
	"github.com/stanielhristov/medical-reservation-sub004/pkg/response"
)

// SecurityHandler exposes the configuration audit to administrators.
type SecurityHandler struct {
	audit *security.AuditService
}

// NewSecurityHandler constructs a SecurityHandler backed by the provided audit service.
func NewSecurityHandler(audit *security.AuditService) (*SecurityHandler, error) {
	if audit == nil {
		return nil, errors.New("security handler: audit service is required")
	}
	return &SecurityHandler{audit: audit}, nil
}

// Audit runs every check and returns the summary.
// GET /api/admin/security/audit
func (h *SecurityHandler) Audit(c *gin.Context) {
	result := h.audit.Run(requestContext(c))
	response.Success(c, http.StatusOK, result)
}
