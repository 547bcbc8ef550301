package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nallenclassics/barber-booking/internal/config"
	dbpkg "github.com/nallenclassics/barber-booking/internal/db"
	"github.com/nallenclassics/barber-booking/internal/middleware"
	"github.com/nallenclassics/barber-booking/internal/notify"
	"github.com/nallenclassics/barber-booking/internal/reminder"
	"github.com/nallenclassics/barber-booking/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	// Reminder sweeps run for the lifetime of the process.
	worker := reminder.NewWorker(
		reminder.NewGormStore(db),
		notify.NewFromConfig(cfg),
		reminder.Config{
			Interval:      cfg.ReminderInterval,
			Lookahead:     cfg.ReminderLookahead,
			Window:        cfg.ReminderWindow,
			FallbackPhone: cfg.BarberFallbackPhone,
		},
	)
	go worker.Run(context.Background())

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
