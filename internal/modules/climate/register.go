package climate

import (
	"database/sql"
	"net/http"

	"surfsup-api/internal/config"
	"surfsup-api/internal/modules/climate/controller"
	"surfsup-api/internal/modules/climate/repository"
	"surfsup-api/internal/modules/climate/service"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, cfg config.Config) {
	climateRepository := repository.NewRepository(db, cfg.QueryTimeout)
	climateService := service.NewService(climateRepository)
	climateController := controller.NewClimateController(climateService)
	climateController.RegisterRoutes(mux)
}
