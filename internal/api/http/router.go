package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentwheels-backend/internal/security"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Tokens        security.TokenManager
	Auth          *AuthHandler
	Vehicles      *VehicleHandler
	Bookings      *BookingHandler
	Flows         *BookingFlowHandler
	Notifications *NotificationHandler
	Dashboard     *DashboardHandler
	UploadsDir    string
}

func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, "ok", nil)
	}).Methods("GET")

	// Public
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", deps.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", deps.Auth.Refresh).Methods("POST")
	api.HandleFunc("/vehicles", deps.Vehicles.List).Methods("GET")
	api.HandleFunc("/vehicles/{id:[0-9]+}", deps.Vehicles.Get).Methods("GET")
	api.HandleFunc("/vehicles/{id:[0-9]+}/pricing-options", deps.Vehicles.PricingOptions).Methods("GET")
	api.HandleFunc("/availability", deps.Bookings.CheckAvailability).Methods("POST")

	// Authenticated
	authed := api.PathPrefix("").Subrouter()
	authed.Use(AuthMiddleware(deps.Tokens))

	authed.HandleFunc("/my/vehicles", deps.Vehicles.ListMine).Methods("GET")
	authed.HandleFunc("/vehicles", deps.Vehicles.Create).Methods("POST")
	authed.HandleFunc("/vehicles/{id:[0-9]+}", deps.Vehicles.Update).Methods("PUT")
	authed.HandleFunc("/vehicles/{id:[0-9]+}", deps.Vehicles.Delete).Methods("DELETE")

	authed.HandleFunc("/bookings", deps.Bookings.Create).Methods("POST")
	authed.HandleFunc("/bookings/my", deps.Bookings.ListMine).Methods("GET")
	authed.HandleFunc("/bookings/owner", deps.Bookings.ListForOwner).Methods("GET")
	authed.HandleFunc("/bookings/{id:[0-9]+}", deps.Bookings.Get).Methods("GET")
	authed.HandleFunc("/bookings/{id:[0-9]+}/accept", deps.Bookings.Accept).Methods("PUT")
	authed.HandleFunc("/bookings/{id:[0-9]+}/decline", deps.Bookings.Decline).Methods("PUT")
	authed.HandleFunc("/bookings/{id:[0-9]+}/start-trip", deps.Bookings.StartTrip).Methods("PUT")
	authed.HandleFunc("/bookings/{id:[0-9]+}/complete-trip", deps.Bookings.CompleteTrip).Methods("PUT")

	authed.HandleFunc("/booking-flow", deps.Flows.Create).Methods("POST")
	authed.HandleFunc("/booking-flow/my", deps.Flows.ListMine).Methods("GET")
	authed.HandleFunc("/booking-flow/{id:[0-9]+}", deps.Flows.Get).Methods("GET")

	authed.HandleFunc("/notifications", deps.Notifications.List).Methods("GET")
	authed.HandleFunc("/notifications/read-all", deps.Notifications.MarkAllAsRead).Methods("PUT")
	authed.HandleFunc("/notifications/clear-read", deps.Notifications.ClearRead).Methods("DELETE")
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", deps.Notifications.MarkAsRead).Methods("PUT")
	authed.HandleFunc("/notifications/{id:[0-9]+}", deps.Notifications.Delete).Methods("DELETE")
	authed.HandleFunc("/notifications/push-token", deps.Notifications.RegisterPushToken).Methods("POST")
	authed.HandleFunc("/notifications/push-token", deps.Notifications.RemovePushToken).Methods("DELETE")

	// Admin
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin)
	admin.HandleFunc("/booking-flow", deps.Flows.ListAll).Methods("GET")
	admin.HandleFunc("/booking-flow/{id:[0-9]+}/approve", deps.Flows.Approve).Methods("PUT")
	admin.HandleFunc("/booking-flow/{id:[0-9]+}/reject", deps.Flows.Reject).Methods("PUT")
	admin.HandleFunc("/booking-flow/{id:[0-9]+}/start", deps.Flows.Start).Methods("PUT")
	admin.HandleFunc("/booking-flow/{id:[0-9]+}/complete", deps.Flows.Complete).Methods("PUT")
	admin.HandleFunc("/dashboard", deps.Dashboard.Overview).Methods("GET")

	// Uploaded document images
	if deps.UploadsDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))
	}

	return r
}
