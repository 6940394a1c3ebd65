package crmhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	auditsvc "nova_crm/internal/api/audit/service"
	basehdl "nova_crm/internal/api/base/handler"
	basemodels "nova_crm/internal/api/base/models"
	authsvc "nova_crm/internal/api/auth/service"
	crmdto "nova_crm/internal/api/crm/dto"
	crmmodels "nova_crm/internal/api/crm/models"
	crmvc "nova_crm/internal/api/crm/service"
	notifmodels "nova_crm/internal/api/notification/models"
	notifsvc "nova_crm/internal/api/notification/service"
	"nova_crm/internal/common"
	"nova_crm/internal/global"
	"nova_crm/internal/realtime"
)

const defaultActivityPageSize = 50

// ActivityHandler serves the activity routes.
type ActivityHandler struct {
	service   *crmvc.ActivityService
	customers *crmvc.CustomerService
	leads     *crmvc.LeadService
	expand    *crmvc.Expander
	hub       *realtime.Hub
	audit     *auditsvc.Recorder
	notifier  *notifsvc.NotificationService
}

// NewActivityHandler wires an ActivityHandler over its dependencies.
func NewActivityHandler(service *crmvc.ActivityService, customers *crmvc.CustomerService, leads *crmvc.LeadService, expand *crmvc.Expander, hub *realtime.Hub, audit *auditsvc.Recorder, notifier *notifsvc.NotificationService) *ActivityHandler {
	return &ActivityHandler{
		service:   service,
		customers: customers,
		leads:     leads,
		expand:    expand,
		hub:       hub,
		audit:     audit,
		notifier:  notifier,
	}
}

// HandleList serves GET /activities.
func (h *ActivityHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		page, limit := basehdl.ParsePageLimit(c, defaultActivityPageSize)

		result, err := h.service.List(c.Context(), c.Query("type"), c.Query("customer_id"), c.Query("lead_id"), page, limit)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		items, err := h.expand.Activities(c.Context(), result.Items)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		if items == nil {
			items = []crmdto.ActivityResponse{}
		}

		return basehdl.Success(c, basemodels.PaginateResult[crmdto.ActivityResponse]{
			Page:      result.Page,
			Limit:     result.Limit,
			ItemCount: result.ItemCount,
			Items:     items,
			Total:     result.Total,
			TotalPage: result.TotalPage,
		})
	})
}

// HandleCreate serves POST /activities.
func (h *ActivityHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		var input crmdto.ActivityCreateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if err := global.Validate.Struct(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		activity, err := h.service.Create(c.Context(), &input, *userID)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		expanded, err := h.expand.Activity(c.Context(), activity)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		h.hub.Broadcast("activity_created", expanded)
		h.audit.Record(c.Context(), auditEntry(c, *userID, "CREATE", authsvc.EntityActivity, activity.ID.Hex(), nil))
		h.notifyAssignee(c, activity, *userID)

		return basehdl.Created(c, expanded)
	})
}

// HandleDelete serves DELETE /activities/:id. Only an admin or the creator
// may remove an activity.
func (h *ActivityHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		id, err := parseIDParam(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		activity, err := h.service.FindOneById(c.Context(), id)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		isOwner := activity.CreatedBy == *userID
		if !authsvc.Allowed(authsvc.EntityActivity, authsvc.ActionDelete, roleFromContext(c), isOwner) {
			return basehdl.Fail(c, common.ErrForbidden)
		}

		if _, err := h.service.DeleteById(c.Context(), id); err != nil {
			return basehdl.Fail(c, err)
		}

		h.hub.Broadcast("activity_deleted", fiber.Map{"id": id.Hex()})
		h.audit.Record(c.Context(), auditEntry(c, *userID, "DELETE", authsvc.EntityActivity, id.Hex(), nil))

		return basehdl.Success(c, fiber.Map{"id": id.Hex()})
	})
}

// notifyAssignee tells the assignee of the related customer or lead about a
// fresh activity. The actor never notifies themselves. Best effort.
func (h *ActivityHandler) notifyAssignee(c fiber.Ctx, activity crmmodels.Activity, actor primitive.ObjectID) {
	var assignee *primitive.ObjectID
	about := ""

	if activity.Lead != nil {
		if lead, err := h.leads.FindOneById(c.Context(), *activity.Lead); err == nil {
			assignee = lead.AssignedTo
			about = lead.Title
		}
	} else if activity.Customer != nil {
		if customer, err := h.customers.FindOneById(c.Context(), *activity.Customer); err == nil {
			assignee = customer.AssignedTo
			about = customer.Name
		}
	}

	if assignee == nil || *assignee == actor {
		return
	}

	h.notifier.Dispatch(c.Context(), *assignee,
		notifmodels.NotificationTypeActivityAdded,
		"New Activity Logged",
		fmt.Sprintf("%s: %s on %s", activity.Type, activity.Subject, about),
		map[string]interface{}{"activityId": activity.ID},
	)
}
