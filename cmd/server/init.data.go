package main

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	authmodels "nova_crm/internal/api/auth/models"
	authsvc "nova_crm/internal/api/auth/service"
	"nova_crm/internal/global"
	"nova_crm/internal/logger"
)

// InitDefaultData seeds the default admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and the account does not exist yet.
func InitDefaultData() {
	log := logger.GetAppLogger()

	cfg := global.ServerConfig
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("Default admin bootstrap skipped (ADMIN_EMAIL/ADMIN_PASSWORD not set)")
		return
	}

	users, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to create user service for bootstrap: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := authsvc.NormalizeEmail(cfg.AdminEmail)
	exists, err := users.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		log.WithError(err).Error("Failed to check for default admin")
		return
	}
	if exists {
		log.Info("Default admin already present")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		log.WithError(err).Error("Failed to hash default admin password")
		return
	}

	admin := authmodels.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         authmodels.RoleAdmin,
		Status:       authmodels.StatusActive,
		IsVerified:   true,
	}

	if _, err := users.InsertOne(ctx, admin); err != nil {
		log.WithError(err).Error("Failed to create default admin")
		return
	}

	log.Infof("Default admin created: %s", maskEmail(email))
}

func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
