package global

import (
	"nova_crm/config"
	"nova_crm/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionNames holds the MongoDB collection names used by the application.
type CollectionNames struct {
	Users         string // User accounts
	Customers     string // CRM customers
	Leads         string // Sales leads
	Activities    string // Customer and lead activities
	Notifications string // In-app notifications
	AuditLogs     string // Persisted audit trail
}

// Shared application state, initialized once at boot.
var (
	Validate           *validator.Validate   // Input validator
	MongoDB_Session    *mongo.Client         // MongoDB connection
	ServerConfig       *config.Configuration // Server configuration
	MongoDB_ColNames   CollectionNames       // Collection names
)

// Registries
var (
	RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registered collections
)

// InitColNames assigns the collection names. Called once during boot before
// collections are registered.
func InitColNames() {
	MongoDB_ColNames = CollectionNames{
		Users:         "auth_users",
		Customers:     "crm_customers",
		Leads:         "crm_leads",
		Activities:    "crm_activities",
		Notifications: "notifications",
		AuditLogs:     "audit_logs",
	}
}
