package crmhdl

import (
	"fmt"

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

const defaultCustomerPageSize = 20

// CustomerHandler serves the customer routes.
type CustomerHandler struct {
	service  *crmvc.CustomerService
	expand   *crmvc.Expander
	hub      *realtime.Hub
	audit    *auditsvc.Recorder
	notifier *notifsvc.NotificationService
}

// NewCustomerHandler wires a CustomerHandler over its dependencies.
func NewCustomerHandler(service *crmvc.CustomerService, expand *crmvc.Expander, hub *realtime.Hub, audit *auditsvc.Recorder, notifier *notifsvc.NotificationService) *CustomerHandler {
	return &CustomerHandler{service: service, expand: expand, hub: hub, audit: audit, notifier: notifier}
}

// HandleList serves GET /customers.
func (h *CustomerHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		page, limit := basehdl.ParsePageLimit(c, defaultCustomerPageSize)

		result, err := h.service.List(c.Context(), c.Query("search"), c.Query("status"), page, limit)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		items, err := h.expand.Customers(c.Context(), result.Items)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		if items == nil {
			items = []crmdto.CustomerResponse{}
		}

		return basehdl.Success(c, basemodels.PaginateResult[crmdto.CustomerResponse]{
			Page:      result.Page,
			Limit:     result.Limit,
			ItemCount: result.ItemCount,
			Items:     items,
			Total:     result.Total,
			TotalPage: result.TotalPage,
		})
	})
}

// HandleGetByID serves GET /customers/:id.
func (h *CustomerHandler) HandleGetByID(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id, err := parseIDParam(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		customer, err := h.service.FindOneById(c.Context(), id)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		expanded, err := h.expand.Customer(c.Context(), customer)
		if err != nil {
			return basehdl.Fail(c, err)
		}
		return basehdl.Success(c, expanded)
	})
}

// HandleCreate serves POST /customers.
func (h *CustomerHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		var input crmdto.CustomerCreateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}
		if err := global.Validate.Struct(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error()))
		}

		customer, err := h.service.Create(c.Context(), &input, *userID)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		expanded, err := h.expand.Customer(c.Context(), customer)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		h.audit.Record(c.Context(), auditEntry(c, *userID, "CREATE", authsvc.EntityCustomer, customer.ID.Hex(), nil))

		if customer.AssignedTo != nil && *customer.AssignedTo != *userID {
			h.notifier.Dispatch(c.Context(), *customer.AssignedTo,
				notifmodels.NotificationTypeCustomerAssigned,
				"New Customer Assigned",
				fmt.Sprintf("You have been assigned customer: %s", customer.Name),
				map[string]interface{}{"customerId": customer.ID},
			)
		}

		h.hub.Broadcast("customer_created", expanded)

		return basehdl.Created(c, expanded)
	})
}

// HandleUpdate serves PATCH /customers/:id.
func (h *CustomerHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}

		id, err := parseIDParam(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		var input crmdto.CustomerUpdateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.Fail(c, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, nil))
		}

		current, err := h.service.FindOneById(c.Context(), id)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		set, err := crmvc.CustomerUpdateSet(&input)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		updated, err := h.service.Update(c.Context(), id, &input)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		expanded, err := h.expand.Customer(c.Context(), updated)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		h.hub.Broadcast("customer_updated", expanded)

		// Every successful PATCH leaves an audit row, even when the submitted
		// values match the stored ones.
		h.audit.Record(c.Context(), auditEntry(c, *userID, "UPDATE", authsvc.EntityCustomer, id.Hex(), auditsvc.UpdateChanges(current, set)))

		return basehdl.Success(c, expanded)
	})
}

// HandleDelete serves DELETE /customers/:id.
func (h *CustomerHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID := getUserIDFromContext(c)
		if userID == nil {
			return basehdl.Fail(c, common.ErrTokenMissing)
		}
		if !authsvc.Allowed(authsvc.EntityCustomer, authsvc.ActionDelete, roleFromContext(c), false) {
			return basehdl.Fail(c, common.ErrForbidden)
		}

		id, err := parseIDParam(c)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		if _, err := h.service.DeleteById(c.Context(), id); err != nil {
			return basehdl.Fail(c, err)
		}

		h.hub.Broadcast("customer_deleted", fiber.Map{"id": id.Hex()})
		h.audit.Record(c.Context(), auditEntry(c, *userID, "DELETE", authsvc.EntityCustomer, id.Hex(), nil))

		return basehdl.Success(c, fiber.Map{"id": id.Hex()})
	})
}
