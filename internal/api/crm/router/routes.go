// Package router registers the CRM routes: customers, leads, activities.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	auditsvc "nova_crm/internal/api/audit/service"
	authsvc "nova_crm/internal/api/auth/service"
	crmhdl "nova_crm/internal/api/crm/handler"
	crmvc "nova_crm/internal/api/crm/service"
	"nova_crm/internal/api/middleware"
	notifsvc "nova_crm/internal/api/notification/service"
	apirouter "nova_crm/internal/api/router"
	"nova_crm/internal/realtime"
)

// Register returns the route registration for the CRM domain, wiring the
// handlers over the shared hub, audit recorder and notifier.
func Register(hub *realtime.Hub, audit *auditsvc.Recorder, notifier *notifsvc.NotificationService) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		users, err := authsvc.NewUserService()
		if err != nil {
			return fmt.Errorf("create UserService: %w", err)
		}
		customers, err := crmvc.NewCustomerService()
		if err != nil {
			return fmt.Errorf("create CustomerService: %w", err)
		}
		leads, err := crmvc.NewLeadService(customers)
		if err != nil {
			return fmt.Errorf("create LeadService: %w", err)
		}
		activities, err := crmvc.NewActivityService(customers, leads)
		if err != nil {
			return fmt.Errorf("create ActivityService: %w", err)
		}
		expand := crmvc.NewExpander(users, customers, leads)

		customerHandler := crmhdl.NewCustomerHandler(customers, expand, hub, audit, notifier)
		leadHandler := crmhdl.NewLeadHandler(leads, expand, hub, audit, notifier)
		activityHandler := crmhdl.NewActivityHandler(activities, customers, leads, expand, hub, audit, notifier)

		auth := []fiber.Handler{middleware.AuthMiddleware()}

		apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/", auth, customerHandler.HandleList)
		apirouter.RegisterRouteWithMiddleware(v1, "/customers", "POST", "/", auth, customerHandler.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/:id", auth, customerHandler.HandleGetByID)
		apirouter.RegisterRouteWithMiddleware(v1, "/customers", "PATCH", "/:id", auth, customerHandler.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(v1, "/customers", "DELETE", "/:id", auth, customerHandler.HandleDelete)

		// /stats/overview must come before /:id so "stats" is not parsed as an id
		apirouter.RegisterRouteWithMiddleware(v1, "/leads", "GET", "/stats/overview", auth, leadHandler.HandleStats)
		apirouter.RegisterRouteWithMiddleware(v1, "/leads", "GET", "/", auth, leadHandler.HandleList)
		apirouter.RegisterRouteWithMiddleware(v1, "/leads", "POST", "/", auth, leadHandler.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(v1, "/leads", "GET", "/:id", auth, leadHandler.HandleGetByID)
		apirouter.RegisterRouteWithMiddleware(v1, "/leads", "PATCH", "/:id", auth, leadHandler.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(v1, "/leads", "DELETE", "/:id", auth, leadHandler.HandleDelete)

		apirouter.RegisterRouteWithMiddleware(v1, "/activities", "GET", "/", auth, activityHandler.HandleList)
		apirouter.RegisterRouteWithMiddleware(v1, "/activities", "POST", "/", auth, activityHandler.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(v1, "/activities", "DELETE", "/:id", auth, activityHandler.HandleDelete)

		return nil
	}
}
