package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/terraincognita07/gravida/internal/api"
	"github.com/terraincognita07/gravida/internal/cli"
	"github.com/terraincognita07/gravida/internal/config"
	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/services"
	"github.com/terraincognita07/gravida/pkg/logger"
)

func main() {
	cfg := config.Load()

	if email, isCommand := resetPasswordArgs(os.Args); isCommand {
		if email == "" {
			logger.Log.Fatal("usage: gravida reset-password <email>")
		}
		if err := cli.RunResetPasswordCommand(cfg.DBPath, email); err != nil {
			logger.Log.WithField("error", err.Error()).Fatal("password reset failed")
		}
		return
	}

	secretKey, err := resolveSecretKey(cfg.SecretKey)
	if err != nil {
		logger.Log.WithField("error", err.Error()).Fatal("refusing to start")
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Log.WithField("error", err.Error()).Fatal("database init failed")
	}

	handler := api.NewHandler(database, secretKey, location, cfg.CookieSecure, services.SystemClock{})

	app := fiber.New(fiber.Config{
		AppName:               "Gravida",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	ticker := services.NewDailyTickService(services.SystemClock{}, location, handler.OnNewDay)
	ticker.Start(lifecycleCtx)
	// Catch up immediately so a process restarted weeks later does not wait
	// for the next midnight tick before settling milestone state.
	handler.OnNewDay(time.Now().In(location))

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Log.WithField("error", err.Error()).Warn("server shutdown failed")
		}
	}()

	logger.Log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   location.String(),
	}).Info("gravida listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.WithField("error", err.Error()).Fatal("server exited")
	}
}

// resetPasswordArgs reports whether argv invokes the reset-password
// subcommand; email is empty when the argument is missing.
func resetPasswordArgs(args []string) (email string, isCommand bool) {
	if len(args) < 2 || args[1] != "reset-password" {
		return "", false
	}
	if len(args) < 3 {
		return "", true
	}
	return args[2], true
}

// resolveSecretKey refuses placeholder or weak signing secrets so an operator
// cannot accidentally expose an instance with a guessable key.
func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	for _, placeholder := range []string{"change_me_in_production", "replace_with_at_least_32_random_characters"} {
		if secret == placeholder {
			return "", errors.New("SECRET_KEY still uses the placeholder value")
		}
	}
	if len(secret) < 32 {
		return "", errors.New("SECRET_KEY must be at least 32 characters")
	}
	return secret, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Log.WithField("tz", name).Warn("invalid timezone, falling back to UTC")
		return time.UTC
	}
	return location
}
