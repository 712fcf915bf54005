package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/middleware"
)

func main() {
	InitializeLogger()
	InitializeConfig()
	InitializeDatabase()
	InitializeServices()

	defer DB.Close()
	defer Progress.Close()

	r := gin.New()
	r.Use(gin.CustomRecovery(handler.HandleInternalError))
	r.Use(middleware.Logger(Logger))
	r.Use(middleware.Gzip())

	store := cookie.NewStore([]byte(Config.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./static")

	handler.RegisterRoutes(r)

	// Expired challenges self-delete on verify; the sweep keeps abandoned
	// ones from accumulating for the process lifetime.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceContainer.Ledger.StartCleanup(ctx, 10*time.Minute)

	if err := os.MkdirAll(Config.UploadDir, 0755); err != nil {
		Logger.Fatalf("failed to create upload directory: %v", err)
	}

	Logger.Infof("[App] starting HTTP server on port %s", Config.Port)
	log.Fatal(http.ListenAndServe(":"+Config.Port, r))
}
