package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medicine-service/pkg/jwtutil"
	"medicine-service/pkg/logger"
	"medicine-service/prometheus"
)

// AuthMiddleware validates the JWT token and extracts the acting company
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		// Catalog mutations act on behalf of a pharmaceutical company, so
		// the token must carry one
		if claims.CompanyID != nil {
			c.Set("company_id", *claims.CompanyID)
			c.Set("company_name", claims.CompanyName)
			c.Set("user_role", claims.Role)
			log.Info("Request authenticated with company context",
				zap.Uint("company_id", *claims.CompanyID),
				zap.String("company_name", claims.CompanyName),
				zap.String("role", claims.Role))
		} else {
			log.Warn("JWT token does not contain company_id")
			prometheus.CompanyContextMissingCounter.Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_id is required in the token"})
		}

		// Token is valid, proceed with the request
		return next(c)
	}
}

// GetCompanyIDFromContext retrieves the company ID from the context
// Returns 0, false if company ID is not found
func GetCompanyIDFromContext(c echo.Context) (uint, bool) {
	companyID, ok := c.Get("company_id").(uint)
	return companyID, ok
}
