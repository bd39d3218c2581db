package routes

import (
	"vibin_client/controllers"
	"vibin_client/services"

	"github.com/gorilla/mux"
)

// RegisterScreenRoutes sets up swipe screen routes under /api/screens
func RegisterScreenRoutes(r *mux.Router, screens *services.ScreenManager) {
	controller := controllers.NewScreenController(screens)

	screenRouter := r.PathPrefix("/api/screens").Subrouter()

	screenRouter.HandleFunc("", controller.HandleMount).Methods("POST")
	screenRouter.HandleFunc("/{screenId}", controller.HandleGet).Methods("GET")
	screenRouter.HandleFunc("/{screenId}", controller.HandleUnmount).Methods("DELETE")
	screenRouter.HandleFunc("/{screenId}/refresh", controller.HandleRefresh).Methods("POST")
	screenRouter.HandleFunc("/{screenId}/cards/{candidateId}/like", controller.HandleLike).Methods("POST")
	screenRouter.HandleFunc("/{screenId}/cards/{candidateId}/pass", controller.HandlePass).Methods("POST")
	screenRouter.HandleFunc("/{screenId}/match/message", controller.HandleMessageMatch).Methods("POST")
	screenRouter.HandleFunc("/{screenId}/match/continue", controller.HandleContinueBrowsing).Methods("POST")
	screenRouter.HandleFunc("/{screenId}/alert/ack", controller.HandleAcknowledgeAlert).Methods("POST")
}
