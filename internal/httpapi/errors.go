package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
)

var authMessages = map[apperror.AuthFailure]string{
	apperror.MissingToken: "Access token required",
	apperror.Malformed:    "Invalid token",
	apperror.Expired:      "Token expired",
	apperror.Stale:        "Invalid token - user not found",
}

// ErrorHandler is the single place where errors become HTTP responses. Store
// failures keep their detail out of the body when production is set.
func ErrorHandler(production bool, logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			authErr     *apperror.AuthenticationError
			validErr    *apperror.ValidationError
			conflictErr *apperror.ConflictError
			notFoundErr *apperror.NotFoundError
			fiberErr    *fiber.Error
		)

		switch {
		case errors.As(err, &authErr):
			if authErr.Reason == apperror.InvalidCredentials {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error":   "Authentication failed",
					"message": "Invalid email or password",
				})
			}
			msg, ok := authMessages[authErr.Reason]
			if !ok {
				msg = "Authentication failed"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})

		case errors.As(err, &validErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Validation failed",
				"details": validErr.Details,
			})

		case errors.As(err, &conflictErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "User already exists",
				"message": conflictErr.Message,
			})

		case errors.As(err, &notFoundErr):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   notFoundErr.Error(),
				"message": notFoundErr.Resource + " does not exist or does not belong to you",
			})

		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		msg := "Internal server error"
		if !production {
			msg = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Something went wrong!",
			"message": msg,
		})
	}
}
