package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID      int32      `json:"vehicle_id"`
		StartAt        *time.Time `json:"start_at"`
		EndAt          *time.Time `json:"end_at"`
		ExpectedKm     float64    `json:"expected_km"`
		PickupLocation string     `json:"pickup_location"`
		Destination    string     `json:"destination"`
		DriverRequired bool       `json:"driver_required"`
		PaymentMethod  string     `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("invalid request body"))
		return
	}

	booking, err := h.bookingSvc.Create(r.Context(), callerID(r), service.CreateBookingRequest{
		VehicleID:      req.VehicleID,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		ExpectedKm:     req.ExpectedKm,
		PickupLocation: req.PickupLocation,
		Destination:    req.Destination,
		DriverRequired: req.DriverRequired,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, "booking created successfully", booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.bookingSvc.Get(r.Context(), callerID(r), callerRole(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", booking)
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		Driver *domain.DriverAssignment `json:"driver"`
	}
	// An empty body is fine when no driver assignment accompanies the accept.
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	booking, err := h.bookingSvc.Accept(r.Context(), callerID(r), id, req.Driver)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "booking accepted successfully", booking)
}

func (h *BookingHandler) Decline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.bookingSvc.Decline(r.Context(), callerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "booking declined successfully", booking)
}

func (h *BookingHandler) StartTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	booking, err := h.bookingSvc.StartTrip(r.Context(), callerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "trip started successfully", booking)
}

func (h *BookingHandler) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		ActualKm float64 `json:"actual_km"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	booking, err := h.bookingSvc.CompleteTrip(r.Context(), callerID(r), id, req.ActualKm)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "trip completed successfully", booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := domain.BookingStatus(r.URL.Query().Get("status"))

	bookings, total, err := h.bookingSvc.ListMine(r.Context(), callerID(r), status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", paged{Items: bookings, Total: total, Page: page, PageSize: pageSize})
}

func (h *BookingHandler) ListForOwner(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := domain.BookingStatus(r.URL.Query().Get("status"))

	bookings, total, err := h.bookingSvc.ListForOwner(r.Context(), callerID(r), status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", paged{Items: bookings, Total: total, Page: page, PageSize: pageSize})
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID int32     `json:"vehicle_id"`
		StartAt   time.Time `json:"start_at"`
		EndAt     time.Time `json:"end_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validation("invalid request body"))
		return
	}

	available, err := h.bookingSvc.CheckAvailability(r.Context(), req.VehicleID, req.StartAt, req.EndAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", map[string]any{"available": available})
}
