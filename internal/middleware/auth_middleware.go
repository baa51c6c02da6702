package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errUnauthorized = apperror.New(apperror.CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	errTokenExpired = apperror.New(apperror.CodeUnauthorized, "Session expired, please sign in again", http.StatusUnauthorized)
	errInvalidToken = apperror.New(apperror.CodeUnauthorized, "Invalid authentication token", http.StatusUnauthorized)
	errForbidden    = apperror.New(apperror.CodeForbidden, "You do not have access to this resource", http.StatusForbidden)
)

// AuthMiddleware validates the access_token cookie and puts the
// verified user id and role on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("access_token")
		if err != nil {
			response.Error(c, errUnauthorized.HTTPStatus, errUnauthorized.Code, errUnauthorized.Message, nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := errInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = errTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id_validated", userID)
		c.Set("role", role)

		c.Next()
	}
}

// RoleMiddleware allows the request through only when the validated
// role matches one of the allowed roles. Must run after AuthMiddleware.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			response.Error(c, errForbidden.HTTPStatus, errForbidden.Code, errForbidden.Message, nil)
			c.Abort()
			return
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			response.Error(c, errForbidden.HTTPStatus, errForbidden.Code, errForbidden.Message, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
