package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/domain/permission"
	"github.com/jmcastano/almacen-api/pkg/jwt"
)

// Locals key para los claims del token en Fiber.
const localClaims = "auth_claims"

// AuthMiddleware valida el Bearer Token JWT y deja los claims en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(localClaims, claims)
		return c.Next()
	}
}

// RequireCapability devuelve un middleware que verifica la capacidad pedida
// contra los flags del token. El flag de administración subsume todas las
// capacidades (tabla única en internal/domain/permission). Debe usarse
// DESPUÉS de AuthMiddleware.
func RequireCapability(required permission.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := getClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token requerido"})
		}
		if !permission.Allowed(GetFlags(c), required) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente para la operación"})
		}
		return c.Next()
	}
}

func getClaims(c *fiber.Ctx) *jwt.Claims {
	v := c.Locals(localClaims)
	if v == nil {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	if claims := getClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// GetUsername devuelve el username del contexto.
func GetUsername(c *fiber.Ctx) string {
	if claims := getClaims(c); claims != nil {
		return claims.Username
	}
	return ""
}

// GetFlags devuelve los flags de permisos del contexto.
func GetFlags(c *fiber.Ctx) permission.Flags {
	claims := getClaims(c)
	if claims == nil {
		return permission.Flags{}
	}
	return permission.Flags{
		IsAdmin:            claims.IsAdmin,
		CanDefineProducts:  claims.CanDefineProducts,
		CanViewReports:     claims.CanViewReports,
		CanManageInventory: claims.CanManageInventory,
	}
}
