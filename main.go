package main

import (
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/cors"

	"posdesk/cache"
	"posdesk/config"
	"posdesk/database"
	"posdesk/remote"
	"posdesk/syncer"
)

func main() {
	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", "./posdesk.db?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}

	if err := database.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	store := cache.NewStore(dbConn)
	api := remote.NewClient(cfg.APIBaseURL, time.Duration(cfg.RequestTimeoutSec)*time.Second)
	sync := syncer.New(store, api)

	mux := http.NewServeMux()

	if info, err := os.Stat("static"); err == nil && info.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir("./static")))
		log.Println("Serving static assets from ./static")
	}

	SetupRoutes(mux, store, api, sync)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      corsHandler.Handler(loggingMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting server on http://localhost%s", cfg.ListenAddr)
	openBrowser("http://localhost" + cfg.ListenAddr)

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
