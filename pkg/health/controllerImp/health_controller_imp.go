package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type HealthCtrl struct{ db *gorm.DB }

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db} }

func (h *HealthCtrl) Health(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "down", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
