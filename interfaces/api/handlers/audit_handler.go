package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/domain/dto"
	"taskchat/domain/services"
	"taskchat/pkg/utils"
)

type AuditHandler struct {
	auditService services.AuditService
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListEntries returns the newest audit entries, newest first.
func (h *AuditHandler) ListEntries(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if _, err := utils.GetUserFromContext(c); err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	entries, err := h.auditService.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.AuditLogsToAuditLogResponses(entries))
}
