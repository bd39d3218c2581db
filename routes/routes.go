package routes

import (
	"vibin_client/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up the base routes of the shell
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
}
