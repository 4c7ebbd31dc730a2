package api

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/nocall/nocall-server/service/booking"
	"github.com/nocall/nocall-server/service/profile"
	"github.com/nocall/nocall-server/service/session"
	"github.com/nocall/nocall-server/service/user"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	verifier := user.NewRemoteVerifier(os.Getenv("VERIFIER_URL"))
	userHandler := user.NewHandler(s.db, verifier)
	userHandler.RegisterRoutes(subrouter)

	profileHandler := profile.NewHandler(s.db)
	profileHandler.RegisterRoutes(subrouter)

	sessionHandler := session.NewHandler(s.db)
	sessionHandler.RegisterRoutes(subrouter)

	bookingHandler := booking.NewHandler(s.db)
	bookingHandler.RegisterRoutes(subrouter)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, cors(handlers.LoggingHandler(os.Stdout, router)))
}
