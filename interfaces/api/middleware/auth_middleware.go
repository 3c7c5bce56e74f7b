package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskchat/domain/ports"
	"taskchat/pkg/logger"
	"taskchat/pkg/utils"
)

// Protected validates the bearer token, rejects revoked tokens and stores
// the user context in fiber locals. revoker may be nil when Redis is
// disabled; logged-out tokens then stay valid until expiry.
func Protected(jwtSecret string, revoker ports.TokenRevoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		userCtx, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrInvalidToken):
				return utils.UnauthorizedResponse(c, "Invalid token")
			default:
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
		}

		if revoker != nil && userCtx.TokenID != "" {
			revoked, err := revoker.IsRevoked(c.UserContext(), userCtx.TokenID)
			if err != nil {
				// Fail closed: an unreachable denylist must not let
				// revoked tokens through.
				logger.ErrorContext(c.UserContext(), "Token revocation check failed", "error", err)
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
			if revoked {
				return utils.UnauthorizedResponse(c, "Token has been revoked")
			}
		}

		c.Locals("user", userCtx)

		return c.Next()
	}
}
