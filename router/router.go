package router

import (
	"github.com/labstack/echo/v4"
)

// New wires the route table. The auth middleware is applied to the api
// group only; health and devlogin stay open.
func New(
	e *echo.Echo,
	auth echo.MiddlewareFunc,
	loadCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		SyncNFe(echo.Context) error
		ResubmitNFe(echo.Context) error
		DistinctValues(echo.Context) error
		Export(echo.Context) error
	},
	whCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		LookupCNPJ(echo.Context) error
	},
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/devlogin", authCtrl.DevLogin)

	api := e.Group("/api/v1", auth)
	api.GET("/whoami", authCtrl.WhoAmI)

	api.POST("/carregamentos", loadCtrl.Create)
	api.GET("/carregamentos", loadCtrl.List)
	api.GET("/carregamentos/distinct-values", loadCtrl.DistinctValues)
	api.GET("/carregamentos/export", loadCtrl.Export)
	api.GET("/carregamentos/:id", loadCtrl.Get)
	api.PUT("/carregamentos/:id", loadCtrl.Update)
	api.POST("/carregamentos/:id/sync-nfe", loadCtrl.SyncNFe)
	api.POST("/carregamentos/:id/resubmit-nfe", loadCtrl.ResubmitNFe)

	api.GET("/armazens", whCtrl.List)
	api.POST("/armazens", whCtrl.Create)
	api.GET("/armazens/:id", whCtrl.Get)
	api.PUT("/armazens/:id", whCtrl.Update)
	api.GET("/destinatarios/busca", whCtrl.LookupCNPJ)

	return e
}
