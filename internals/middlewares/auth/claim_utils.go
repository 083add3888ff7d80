package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	errMissingToken = errors.New("Unauthorized - Missing token")
	errTokenExpired = errors.New("token expired")
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); token != "" {
			return token, nil
		}
	}
	// cookie fallback for browser clients
	if token := c.Cookies("access_token"); token != "" {
		return token, nil
	}
	return "", errMissingToken
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errTokenExpired
	}
	if time.Now().After(time.Unix(int64(exp), 0).Add(leeway)) {
		return errTokenExpired
	}
	return nil
}

// storeClaimsToLocals copies identity claims into request locals. user_id and
// role are mandatory; student/staff links are optional and only present for
// accounts holding those records.
func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) error {
	rawID, ok := claims["user_id"].(string)
	if !ok {
		return errors.New("missing user_id claim")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return err
	}
	c.Locals("user_id", userID.String())

	if role, ok := claims["role"].(string); ok {
		c.Locals("userRole", role)
	}
	if name, ok := claims["user_name"].(string); ok {
		c.Locals("user_name", name)
	}
	if sid, ok := claims["student_id"].(string); ok && sid != "" {
		c.Locals("student_id", sid)
	}
	if sid, ok := claims["staff_id"].(string); ok && sid != "" {
		c.Locals("staff_id", sid)
	}
	if sr, ok := claims["staff_role"].(string); ok && sr != "" {
		c.Locals("staff_role", sr)
	}
	return nil
}
