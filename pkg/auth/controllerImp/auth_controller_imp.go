package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"integrarural/entities"
	"integrarural/pkg/middleware"
)

type AuthCtrl struct {
	secret   string
	devLogin bool
}

func New(secret string, devLogin bool) *AuthCtrl {
	return &AuthCtrl{secret: secret, devLogin: devLogin}
}

// DevLogin issues a short-lived token for local development. Disabled in
// real deployments, where the identity provider issues tokens.
func (a *AuthCtrl) DevLogin(c echo.Context) error {
	if !a.devLogin {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "dev login disabled"})
	}
	uid := uint(1)
	if v, err := strconv.ParseUint(c.QueryParam("uid"), 10, 32); err == nil {
		uid = uint(v)
	}
	role := c.QueryParam("role")
	if role == "" {
		role = entities.RoleManager
	}
	claims := &middleware.Claims{
		UserID: uid,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.secret))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": signed, "uid": uid, "role": role})
}

func (a *AuthCtrl) WhoAmI(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"uid": c.Get("uid"), "role": c.Get("role")})
}
