package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pastevault/backend/internal/config"
	"github.com/pastevault/backend/internal/dto"
	"github.com/pastevault/backend/internal/services"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// GetActor extracts the authenticated actor identity from JWT claims in
// context. The upstream auth service signs the token; its claims are trusted.
func GetActor(c *fiber.Ctx) (services.Actor, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return services.Actor{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return services.Actor{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return services.Actor{}, errors.New("missing sub claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return services.Actor{}, err
	}

	isAdmin, _ := claims["is_admin"].(bool)
	return services.Actor{ID: id, IsAdmin: isAdmin}, nil
}
