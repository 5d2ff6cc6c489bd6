package api

import (
	"database/sql"
	"net/http"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/auth"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/lifecycle"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/metrics"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/photostore"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, svc *lifecycle.Service, sessions *auth.Sessions, photos photostore.Store) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Sessions: sessions}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{Service: svc}
	archivesHandler := &ArchivesHandler{Service: svc}
	solvedHandler := &SolvedHandler{Service: svc}
	dashboardHandler := &DashboardHandler{Service: svc}
	photosHandler := &PhotosHandler{Photos: photos}

	authMW := AuthMiddleware(sessions, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireOperator := RequireRole(model.RoleOperator)
	operator := func(h http.HandlerFunc) http.Handler { return authMW(requireOperator(h)) }
	admin := func(h http.HandlerFunc) http.Handler { return authMW(requireAdmin(h)) }

	// Public: login, intake, photos, dashboard figures.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/items/found", itemsHandler.CreateFound)
	mux.HandleFunc("POST /api/items/lost", itemsHandler.CreateLost)
	mux.HandleFunc("POST /api/photos", photosHandler.Upload)
	mux.HandleFunc("GET "+PhotosPath+"{key}", photosHandler.Get)
	mux.HandleFunc("GET /api/dashboard/stats", dashboardHandler.Stats)
	mux.Handle("GET /metrics", metrics.Handler())

	// Sessions.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Active tables.
	mux.Handle("GET /api/items/{table}", operator(itemsHandler.List))
	mux.Handle("DELETE /api/items/{table}/{id}", operator(itemsHandler.Delete))
	mux.Handle("POST /api/items/{table}/{id}/archive", operator(itemsHandler.Archive))

	// Archive and donation.
	mux.Handle("GET /api/archives", operator(archivesHandler.List))
	mux.Handle("POST /api/archives/{id}/restore", operator(archivesHandler.Restore))
	mux.Handle("POST /api/archives/donate", operator(archivesHandler.Donate))
	mux.Handle("GET /api/donations", operator(archivesHandler.ListDonations))
	mux.Handle("DELETE /api/donations/{id}", operator(archivesHandler.PurgeDonation))
	mux.Handle("POST /api/donations/{id}/restore", operator(archivesHandler.RestoreDonation))

	// Matching and claims.
	mux.Handle("POST /api/solved", operator(solvedHandler.Match))
	mux.Handle("GET /api/solved", operator(solvedHandler.List))
	mux.Handle("POST /api/solved/{id}/claim", operator(solvedHandler.Claim))

	// Maintenance.
	mux.Handle("POST /api/admin/sweep", operator(dashboardHandler.Sweep))
	mux.Handle("GET /api/admin/sweep", operator(dashboardHandler.SweepStatus))

	// Users (admin only).
	mux.Handle("GET /api/users", admin(usersHandler.List))
	mux.Handle("POST /api/users", admin(usersHandler.Create))
	mux.Handle("PUT /api/users/{id}/password", admin(usersHandler.ResetPassword))
	mux.Handle("DELETE /api/users/{id}", admin(usersHandler.Delete))

	return mux
}
