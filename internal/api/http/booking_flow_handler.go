package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/service"
)

type BookingFlowHandler struct {
	flowSvc     service.BookingFlowService
	documentSvc service.DocumentService
	maxUpload   int64
}

func NewBookingFlowHandler(flowSvc service.BookingFlowService, documentSvc service.DocumentService, maxFileSizeMB int64) *BookingFlowHandler {
	return &BookingFlowHandler{
		flowSvc:     flowSvc,
		documentSvc: documentSvc,
		maxUpload:   maxFileSizeMB * 1024 * 1024,
	}
}

// Create accepts either a JSON body or a multipart form carrying document
// images alongside the booking fields.
func (h *BookingFlowHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateFlowRequest
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err = h.parseMultipartCreate(r)
	} else {
		req, err = parseJSONCreate(r)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	flow, err := h.flowSvc.Create(r.Context(), callerID(r), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, "booking created successfully, waiting for admin approval", flow)
}

func parseJSONCreate(r *http.Request) (service.CreateFlowRequest, error) {
	var body struct {
		VehicleID      int32                  `json:"vehicle_id"`
		Phone          string                 `json:"phone"`
		Email          string                 `json:"email"`
		Description    string                 `json:"description"`
		StartDate      *time.Time             `json:"start_date"`
		EndDate        *time.Time             `json:"end_date"`
		DriverIncluded bool                   `json:"driver_included"`
		DocumentImages []string               `json:"document_images"`
		PaymentMethod  string                 `json:"payment_method"`
		Price          *domain.PriceBreakdown `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return service.CreateFlowRequest{}, apperr.Validation("invalid request body")
	}
	return service.CreateFlowRequest{
		VehicleID:      body.VehicleID,
		Phone:          body.Phone,
		Email:          body.Email,
		Description:    body.Description,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
		DriverIncluded: body.DriverIncluded,
		DocumentImages: body.DocumentImages,
		PaymentMethod:  domain.FlowPaymentMethod(body.PaymentMethod),
		Price:          body.Price,
	}, nil
}

func (h *BookingFlowHandler) parseMultipartCreate(r *http.Request) (service.CreateFlowRequest, error) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		return service.CreateFlowRequest{}, apperr.Validation("invalid multipart form")
	}

	req := service.CreateFlowRequest{
		Phone:          r.FormValue("phone"),
		Email:          r.FormValue("email"),
		Description:    r.FormValue("description"),
		DriverIncluded: r.FormValue("driver_included") == "true",
		PaymentMethod:  domain.FlowPaymentMethod(r.FormValue("payment_method")),
	}
	if id, err := parseFormID(r.FormValue("vehicle_id")); err == nil {
		req.VehicleID = id
	}
	if t, err := time.Parse(time.RFC3339, r.FormValue("start_date")); err == nil {
		req.StartDate = &t
	}
	if t, err := time.Parse(time.RFC3339, r.FormValue("end_date")); err == nil {
		req.EndDate = &t
	}

	var files []service.DocumentFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["document_images"] {
			f, err := header.Open()
			if err != nil {
				return service.CreateFlowRequest{}, apperr.Internal(err)
			}
			data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
			f.Close()
			if err != nil {
				return service.CreateFlowRequest{}, apperr.Internal(err)
			}
			files = append(files, service.DocumentFile{Name: header.Filename, Data: data})
		}
	}
	if len(files) > 0 {
		urls, err := h.documentSvc.Upload(r.Context(), files)
		if err != nil {
			return service.CreateFlowRequest{}, err
		}
		req.DocumentImages = urls
	}
	return req, nil
}

func (h *BookingFlowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	flow, err := h.flowSvc.Get(r.Context(), callerID(r), callerRole(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", flow)
}

func (h *BookingFlowHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	flows, total, err := h.flowSvc.ListMine(r.Context(), callerID(r), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", paged{Items: flows, Total: total, Page: page, PageSize: pageSize})
}

func (h *BookingFlowHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	status := domain.FlowStatus(r.URL.Query().Get("status"))

	flows, total, err := h.flowSvc.ListAll(r.Context(), callerRole(r), status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", paged{Items: flows, Total: total, Page: page, PageSize: pageSize})
}

func (h *BookingFlowHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, h.flowSvc.Approve, "booking approved successfully")
}

func (h *BookingFlowHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, h.flowSvc.Reject, "booking rejected successfully")
}

func (h *BookingFlowHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.adminTransition(w, r, h.flowSvc.Start, "booking marked as ongoing")
}

func (h *BookingFlowHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		Notes            string `json:"notes"`
		PaymentConfirmed bool   `json:"payment_confirmed"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	flow, err := h.flowSvc.Complete(r.Context(), callerRole(r), id, req.Notes, req.PaymentConfirmed)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "booking completed successfully and payment confirmed", flow)
}

func (h *BookingFlowHandler) adminTransition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, role domain.Role, id int32, notes string) (*domain.BookingFlow, error),
	message string,
) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	flow, err := apply(r.Context(), callerRole(r), id, req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, message, flow)
}

func parseFormID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid vehicle_id %q", raw)
	}
	return int32(id), nil
}
