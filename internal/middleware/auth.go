package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextCaller   = "caller"
)

// AuthMiddleware turns the bearer token issued by the identity provider into
// an identity.Caller. Tokens carry sub, role and, for profile owners,
// doctorId or patientId.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Missing Authorization header.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Invalid token claims.")
			c.Abort()
			return
		}

		caller, ok := callerFromClaims(claims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "Invalid token payload.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, caller.UserID)
		c.Set(ContextUserRole, string(caller.Role))
		c.Set(ContextCaller, caller)

		c.Next()
	}
}

func callerFromClaims(claims jwt.MapClaims) (identity.Caller, bool) {
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return identity.Caller{}, false
	}
	role, _ := claims["role"].(string)
	caller := identity.Caller{UserID: uint(sub), Role: identity.Role(role)}
	if !caller.Role.Valid() {
		return identity.Caller{}, false
	}

	if id, ok := claims["doctorId"].(float64); ok && id > 0 {
		v := uint(id)
		caller.DoctorID = &v
	}
	if id, ok := claims["patientId"].(float64); ok && id > 0 {
		v := uint(id)
		caller.PatientID = &v
	}
	return caller, true
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) identity.Caller {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return identity.Caller{}
	}
	caller, _ := v.(identity.Caller)
	return caller
}

// RequireRole lets through only callers holding one of roles.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "Not allowed for this role.")
		c.Abort()
	}
}
