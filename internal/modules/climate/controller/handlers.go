package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"surfsup-api/internal/modules/climate/service"
	"surfsup-api/internal/modules/climate/views"
	"surfsup-api/internal/utils"
)

func (c *climateControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := views.RenderRoutes(&buf, &views.RoutesData{Routes: c.service.ListRoutes()}); err != nil {
		slog.Error("index template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	utils.WriteHTML(w, http.StatusOK, buf.Bytes())
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.GetPrecipitation(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.GetStations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleTemperatureObservations(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.GetTemperatureObservations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleMostActiveStation(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.GetMostActiveStationTemperatures(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleStatsFrom(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.GetTemperatureStats(r.Context(), r.PathValue("start"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (c *climateControllerImpl) handleStatsBetween(w http.ResponseWriter, r *http.Request) {
	out, err := c.service.GetTemperatureStatsBetween(r.Context(), r.PathValue("start"), r.PathValue("end"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

// writeServiceError maps a rejected date range to 404 and anything else to 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var rangeErr *service.InvalidDateRangeError
	if errors.As(err, &rangeErr) {
		utils.WriteNotFound(w, rangeErr.Error())
		return
	}
	slog.Error("request failed", "path", r.URL.Path, "error", err)
	utils.WriteError(w, http.StatusInternalServerError, err.Error())
}
