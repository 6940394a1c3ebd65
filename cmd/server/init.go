package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"nova_crm/config"
	auditmodels "nova_crm/internal/api/audit/models"
	authmodels "nova_crm/internal/api/auth/models"
	crmmodels "nova_crm/internal/api/crm/models"
	notifmodels "nova_crm/internal/api/notification/models"
	"nova_crm/internal/database"
	"nova_crm/internal/global"
)

// InitGlobal initializes the process-wide state: collection names,
// validator, server config and the MongoDB connection.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabaseMongoDB()
}

func initColNames() {
	global.InitColNames()
	logrus.Info("Initialized collection names")
}

func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabaseMongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections")

	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Customers), crmmodels.Customer{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Leads), crmmodels.Lead{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Activities), crmmodels.Activity{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Notifications), notifmodels.Notification{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.AuditLogs), auditmodels.AuditLog{})
}
