package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"integrarural/config"
	"integrarural/database"
	"integrarural/router"

	authCtrlImp "integrarural/pkg/auth/controllerImp"
	"integrarural/pkg/cnpj"
	"integrarural/pkg/fiscal"
	healthCtrlImp "integrarural/pkg/health/controllerImp"
	loadCtrlImp "integrarural/pkg/load/controllerImp"
	loadRepoImp "integrarural/pkg/load/repositoryImp"
	loadSvcImp "integrarural/pkg/load/serviceImp"
	"integrarural/pkg/middleware"
	"integrarural/pkg/permission"
	whCtrlImp "integrarural/pkg/warehouse/controllerImp"
	whRepoImp "integrarural/pkg/warehouse/repositoryImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) Fiscal collaborators
	builder := fiscal.NewBuilder(cfg.FocusEnv)
	submitter := fiscal.NewClient(cfg)

	// 5) Repos + services
	farms := loadRepoImp.NewFarmRepository(db)
	perms := permission.NewRepository(db)
	loadSvc := loadSvcImp.New(db, farms, perms, builder, submitter, cfg.FocusEnv)

	// 6) Controllers
	loadCtrl := loadCtrlImp.New(loadSvc)
	whCtrl := whCtrlImp.New(whRepoImp.New(db), cnpj.NewClient(cfg.CNPJLookupURL))
	authCtrl := authCtrlImp.New(cfg.JWTSecret, cfg.DevLogin)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 7) Router
	r := router.New(
		e,
		middleware.Auth(cfg.JWTSecret, cfg.DevLogin),
		loadCtrl,
		whCtrl,
		authCtrl,
		healthCtrl,
	)

	// 8) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
