package middleware

import (
	config "github.com/harmonyhq/harmony_academy/configs"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

// Protected validates the bearer credential. A missing header, a bad
// signature and an expired token are indistinguishable to the caller:
// all of them produce the same 401 body.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"error": true, "message": "unauthorized access"})
}

// VerifySelf enforces the requester-match rule on gated per-identity
// queries: the email embedded in the credential must equal the email
// query parameter. Runs after Protected, before any store access.
func VerifySelf() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Query("email")
		if email != "" && email != TokenEmail(c) {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"error": true, "message": "forbidden access"})
		}
		return c.Next()
	}
}

func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if TokenRole(c) != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": true, "message": "forbidden access",
			})
		}
		return c.Next()
	}
}

func InstructorRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if TokenRole(c) != "instructor" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": true, "message": "forbidden access",
			})
		}
		return c.Next()
	}
}

// TokenEmail extracts the identity claim set by Protected.
func TokenEmail(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

func TokenRole(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
