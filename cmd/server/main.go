package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	auditsvc "nova_crm/internal/api/audit/service"
	"nova_crm/internal/api/middleware"
	notifsvc "nova_crm/internal/api/notification/service"
	"nova_crm/internal/global"
	"nova_crm/internal/logger"
	"nova_crm/internal/mailer"
	"nova_crm/internal/realtime"
)

// initLogger initializes the logging system before anything else runs.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// buildHub creates the websocket hub and starts its run loop in a
// supervised goroutine.
func buildHub() *realtime.Hub {
	log := logger.GetAppLogger()

	hub := realtime.NewHub(
		[]string{global.ServerConfig.FrontendURL},
		func(token string) error {
			_, err := middleware.TokenManager().ValidateToken(token)
			return err
		},
	)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("Websocket hub goroutine panic")
			}
		}()
		hub.Run()
	}()

	log.Info("Websocket hub started")
	return hub
}

// mainThread builds the Fiber app and serves it on the main goroutine.
func mainThread(deps *AppDeps) {
	log := logger.GetAppLogger()

	app, err := InitFiberApp(deps)
	if err != nil {
		log.Fatalf("Failed to build fiber app: %v", err)
	}

	cfg := global.ServerConfig
	address := cfg.Address

	// Relative TLS paths resolve from the directory holding config/env.
	resolvePath := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		currentDir, err := os.Getwd()
		if err != nil {
			return path
		}
		for {
			envDir := filepath.Join(currentDir, "config", "env")
			if _, err := os.Stat(envDir); err == nil {
				return filepath.Join(currentDir, path)
			}
			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				return path
			}
			currentDir = parentDir
		}
	}

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		if _, err := os.Stat(certPath); os.IsNotExist(err) {
			log.Fatalf("TLS certificate file not found: %s", certPath)
		}
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			log.Fatalf("TLS key file not found: %s", keyPath)
		}

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		tlsListener := tls.NewListener(ln, tlsConfig)

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
	} else {
		log.WithFields(map[string]interface{}{
			"address":  address,
			"protocol": "HTTP",
		}).Info("Starting server with HTTP")

		if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
			log.Fatalf("Error in Fiber Listen: %v", err)
		}
	}
}

func main() {
	initLogger()
	InitGlobal()
	InitRegistry()
	InitDefaultData()

	log := logger.GetAppLogger()
	hub := buildHub()

	notifier, err := notifsvc.NewNotificationService(hub)
	if err != nil {
		log.Fatalf("Failed to create notification service: %v", err)
	}
	audit, err := auditsvc.NewRecorder()
	if err != nil {
		log.Fatalf("Failed to create audit recorder: %v", err)
	}
	mail := mailer.New(global.ServerConfig)

	log.Infof("Boot completed at %s", time.Now().Format(time.RFC3339))

	mainThread(&AppDeps{
		Hub:      hub,
		Audit:    audit,
		Notifier: notifier,
		Mail:     mail,
	})
}
