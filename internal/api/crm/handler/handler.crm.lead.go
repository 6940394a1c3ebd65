package crmhdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	auditsvc "nova_crm/internal/api/audit/service"
	basehdl "nova_crm/internal/api/base/handler"
	basemodels "nova_crm/internal/api/base/models"
	authsvc "nova_crm/internal/api/auth/service"
	crmdto "nova_crm/internal/api/crm/dto"
	crmvc "nova_crm/internal/api/crm/service"
	notifmodels "nova_crm/internal/api/notification/models"
	notifsvc "nova_crm/internal/api/notification/service"
	"nova_crm/internal/common"
	"nova_crm/internal/global"
	"nova_crm/internal/realtime"
)

const defaultLeadPageSize = 100

// LeadHandler serves the lead routes.
type LeadHandler struct {
	service  *crmvc.LeadService
	expand   *crmvc.Expander
	hub      *realtime.Hub
	audit    *auditsvc.Recorder
	notifier *notifsvc.NotificationService
}

// NewLeadHandler wires a LeadHandler over its dependencies.
func NewLeadHandler(service *crmvc.LeadService, expand *crmvc.Expander, hub *realtime.Hub, audit *auditsvc.Recorder, notifier *notifsvc.NotificationService) *LeadHandler {
	return &LeadHandler{service: service, expand: expand, hub: hub, audit: audit, notifier: notifier}
}

// HandleList serves GET /leads.
func (h *LeadHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		page, limit := basehdl.ParsePageLimit(c, defaultLeadPageSize)

		result, err := h.service.List(c.Context(), c.Query("search"), c.Query("status"), page, limit)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		items, err := h.expand.Leads(c.Context(), result.Items)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		if items == nil {
			items = []crmdto.LeadResponse{}
		}

		return basehdl.Success(c, basemodels.PaginateResult[crmdto.LeadResponse]{
			Page:      result.Page,
			Limit:     result.Limit,
			ItemCount: result.ItemCount,
			Items:     items,
			Total:     result.Total,
			TotalPage: result.TotalPage,
		})
	})
}

// HandleStats serves GET /leads/stats/overview.
func (h *LeadHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		stats, err := h.service.Stats(c.Context())
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, stats)
	})
}

// HandleGetByID serves GET /leads/:id.
func (h *LeadHandler) HandleGetByID(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		lead, err := h.service.FindOneById(c.Context(), id)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		expanded, err := h.expand.Lead(c.Context(), lead)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, expanded)
	})
}

// HandleCreate serves POST /leads.
func (h *LeadHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		var input crmdto.LeadCreateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if err := global.Validate.Struct(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		lead, err := h.service.Create(c.Context(), &input, *userID)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		expanded, err := h.expand.Lead(c.Context(), lead)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		h.audit.Record(c.Context(), auditEntry(c, *userID, "CREATE", authsvc.EntityLead, lead.ID.Hex(), nil))

		if lead.AssignedTo != nil && *lead.AssignedTo != *userID {
			h.notifier.Dispatch(c.Context(), *lead.AssignedTo,
				notifmodels.NotificationTypeLeadAssigned,
				"New Lead Assigned",
				fmt.Sprintf("You have been assigned lead: %s", lead.Title),
				map[string]interface{}{"leadId": lead.ID},
			)
		}

		h.hub.Broadcast("lead_created", expanded)

		return basehdl.Created(c, expanded)
	})
}

// HandleUpdate serves PATCH /leads/:id.
func (h *LeadHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		id, err := parseIDParam(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		var input crmdto.LeadUpdateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}

		current, err := h.service.FindOneById(c.Context(), id)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		set, err := crmvc.LeadUpdateSet(&input, &current, time.Now().UnixMilli())
		if err != nil {
			return basehdl.Fail(c, err)
		}

		updated, err := h.service.Update(c.Context(), id, &input)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		expanded, err := h.expand.Lead(c.Context(), updated)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		// Every successful PATCH leaves an audit row, even when the submitted
		// values match the stored ones.
		h.audit.Record(c.Context(), auditEntry(c, *userID, "UPDATE", authsvc.EntityLead, id.Hex(), auditsvc.UpdateChanges(current, set)))

		if input.Status != nil && updated.AssignedTo != nil && *updated.AssignedTo != *userID {
			h.notifier.Dispatch(c.Context(), *updated.AssignedTo,
				notifmodels.NotificationTypeLeadUpdated,
				"Lead Status Updated",
				fmt.Sprintf("Lead '%s' status changed to %s", updated.Title, updated.Status),
				map[string]interface{}{"leadId": updated.ID},
			)
		}

		h.hub.Broadcast("lead_updated", expanded)

		return basehdl.Success(c, expanded)
	})
}

// HandleDelete serves DELETE /leads/:id.
func (h *LeadHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}
		if !authsvc.Allowed(authsvc.EntityLead, authsvc.ActionDelete, roleFromContext(c), false) {
			return basehdl.Fail(c, common.ErrForbidden)
		}

		id, err := parseIDParam(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		if _, err := h.service.DeleteById(c.Context(), id); err != nil {
			return basehdl.Fail(c, err)
		}

		h.hub.Broadcast("lead_deleted", fiber.Map{"id": id.Hex()})
		h.audit.Record(c.Context(), auditEntry(c, *userID, "DELETE", authsvc.EntityLead, id.Hex(), nil))

		return basehdl.Success(c, fiber.Map{"id": id.Hex()})
	})
}
