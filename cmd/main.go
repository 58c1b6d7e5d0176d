package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/abdul-muhaimin-toha/library-management/configs"
	"github.com/abdul-muhaimin-toha/library-management/internal/daemon"
	"github.com/abdul-muhaimin-toha/library-management/internal/db"
	"github.com/abdul-muhaimin-toha/library-management/internal/handlers"
	"github.com/abdul-muhaimin-toha/library-management/internal/middleware"
	"github.com/abdul-muhaimin-toha/library-management/internal/service"
	"github.com/abdul-muhaimin-toha/library-management/internal/store"
	"github.com/abdul-muhaimin-toha/library-management/internal/utils"
)

func main() {
	startedAt := time.Now()

	cfg := configs.LoadConfig()
	db.Connect(cfg.MongoURI)

	auditCol := db.GetCollection(cfg.DBName, "audit_logs")
	auditLogger := utils.Logger{Collection: auditCol}

	bookStore := store.NewBookStore(db.GetCollection(cfg.DBName, "books"))
	borrowStore := store.NewBorrowStore(db.GetCollection(cfg.DBName, "borrows"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bookStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create book indexes: %v", err)
	}
	cancel()

	borrowService := service.NewBorrowService(bookStore, borrowStore, &auditLogger)

	r := mux.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.JSONMiddleware)

	healthHandler := handlers.HealthHandler{StartedAt: startedAt, PingDB: db.Ping}
	r.HandleFunc("/health", healthHandler.GetHealth).Methods("GET")

	bookHandler := handlers.NewBookHandler(bookStore, auditLogger)

	r.HandleFunc("/books", bookHandler.AddBook).Methods("POST")
	r.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	r.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")
	r.HandleFunc("/books/{id}", bookHandler.UpdateBook).Methods("PATCH")
	r.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")

	borrowHandler := handlers.NewBorrowHandler(borrowService, borrowStore)

	r.HandleFunc("/borrow", borrowHandler.BorrowBook).Methods("POST")
	r.HandleFunc("/borrow", borrowHandler.GetSummary).Methods("GET")

	metricsHandler := handlers.MetricsHandler{
		BookCol:   db.GetCollection(cfg.DBName, "books"),
		BorrowCol: db.GetCollection(cfg.DBName, "borrows"),
	}

	r.HandleFunc("/admin/metrics", metricsHandler.GetMetrics).Methods("GET")

	exporter := daemon.NewLogExporter(auditCol, cfg.AuditExportInterval)
	exporter.Start()

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Println("Server starting on port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down gracefully...")
	exporter.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect failed: %v", err)
	}
	log.Println("Server shut down.")
}
