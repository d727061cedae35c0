package cmd

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/camden-git/civicarchive/config"
	"github.com/camden-git/civicarchive/database"
	"github.com/camden-git/civicarchive/handlers"
	"github.com/camden-git/civicarchive/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only JSON API over the archived resolutions",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying sql.DB: %v", err)
	}

	resolutionHandler := &handlers.ResolutionHandler{
		Repo:     repository.NewResolutionRepository(db),
		ReportDB: sqlDB,
	}
	personHandler := &handlers.PersonHandler{
		Repo: repository.NewPersonRepository(db),
	}

	r := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/resolutions", func(r chi.Router) {
			r.Get("/", resolutionHandler.ListResolutions)
			r.Route("/{resolution_id}", func(r chi.Router) {
				r.Get("/", resolutionHandler.GetResolution)
				r.Delete("/", resolutionHandler.DeleteResolution)
				r.Get("/votes", resolutionHandler.GetResolutionVotes)
			})
		})
		r.Get("/people", personHandler.ListPeople)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
