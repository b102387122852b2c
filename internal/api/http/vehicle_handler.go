package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/service"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respondError(w, apperr.Validation("invalid request body"))
		return
	}
	if err := h.vehicleSvc.Create(r.Context(), callerID(r), &v); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, "vehicle created successfully", v)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	vehicle, err := h.vehicleSvc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var v domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respondError(w, apperr.Validation("invalid request body"))
		return
	}
	v.ID = id
	if err := h.vehicleSvc.Update(r.Context(), callerID(r), callerRole(r), &v); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "vehicle updated successfully", v)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.vehicleSvc.Delete(r.Context(), callerID(r), callerRole(r), id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "vehicle deleted successfully", nil)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	kind := domain.VehicleKind(r.URL.Query().Get("kind"))
	category := domain.VehicleCategory(r.URL.Query().Get("category"))

	vehicles, total, err := h.vehicleSvc.List(r.Context(), kind, category, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", paged{Items: vehicles, Total: total, Page: page, PageSize: pageSize})
}

func (h *VehicleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	vehicles, total, err := h.vehicleSvc.ListByOwner(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", paged{Items: vehicles, Total: total, Page: page, PageSize: pageSize})
}

func (h *VehicleHandler) PricingOptions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	options, driver, err := h.vehicleSvc.PricingOptions(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]any{
		"pricing_options": options,
		"driver_pricing":  driver,
	})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func pageParams(r *http.Request) (int32, int32) {
	parse := func(name string, def int32) int32 {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return def
		}
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 1 {
			return def
		}
		return int32(n)
	}
	return parse("page", 1), parse("page_size", 20)
}
