package app

import (
	"fmt"
	"net/http"

	"faceserver/internal/config"
	"faceserver/internal/logger"
	"faceserver/internal/recognition"
	"faceserver/internal/repository/sqlite"
	"faceserver/internal/routes"
	"faceserver/internal/session"
	"faceserver/internal/vision"
	"faceserver/internal/websocket"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	db       *sqlite.DB
	engine   *vision.Engine
	pipeline *recognition.Pipeline
	sessions *session.Manager
	logRepo  *sqlite.RecognitionLogRepository
	hub      *websocket.HubService
}

// NewApp wires the whole server: config, logging, store, models, gallery,
// pipeline and session manager. A model load failure is fatal because the
// system has no fallback inference path.
func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	engine, err := vision.NewEngine(cfg, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize vision engine: %w", err)
	}

	enrollments, err := sqlite.NewEnrollmentRepository(db).GetAll()
	if err != nil {
		engine.Close()
		db.Close()
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}

	gallery := recognition.LoadGallery(engine, enrollments, log)
	log.Info("Loaded known faces for: %v", gallery.Names())

	return &App{
		config:   cfg,
		logger:   log,
		db:       db,
		engine:   engine,
		pipeline: recognition.NewPipeline(gallery, cfg.MatchThreshold, log),
		sessions: session.NewManager(sqlite.NewCredentialRepository(db), log),
		logRepo:  sqlite.NewRecognitionLogRepository(db),
		hub:      websocket.NewHubService(log),
	}, nil
}

// Run starts the background hub and serves HTTP until the listener fails.
func (a *App) Run() error {
	go a.hub.Run()

	router := routes.SetupRoutes(a.config, a.logger, a.sessions,
		a.engine, a.pipeline, a.logRepo, a.hub)

	fmt.Printf("🚀 Face Recognition Server\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🗄  Database: %s\n", a.config.DatabasePath)
	fmt.Printf("🎯 Match threshold: %.2f\n", a.config.MatchThreshold)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

// Close releases the vision engine and the database.
func (a *App) Close() {
	a.engine.Close()
	a.db.Close()
}
