// Package audithdl - HTTP handlers for the audit trail.
package audithdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	auditdto "nova_crm/internal/api/audit/dto"
	auditsvc "nova_crm/internal/api/audit/service"
	authdto "nova_crm/internal/api/auth/dto"
	authsvc "nova_crm/internal/api/auth/service"
	basehdl "nova_crm/internal/api/base/handler"
	basemodels "nova_crm/internal/api/base/models"
	"nova_crm/internal/common"
)

const defaultAuditPageSize = 25

// AuditHandler serves the admin audit trail routes.
type AuditHandler struct {
	recorder *auditsvc.Recorder
	users    *authsvc.UserService
}

// NewAuditHandler wires an AuditHandler over its dependencies.
func NewAuditHandler(recorder *auditsvc.Recorder, users *authsvc.UserService) *AuditHandler {
	return &AuditHandler{recorder: recorder, users: users}
}

// HandleList serves GET /admin/audit-logs.
func (h *AuditHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		page, limit := basehdl.ParsePageLimit(c, defaultAuditPageSize)

		result, err := h.recorder.List(c.Context(), c.Query("entity"), c.Query("action"), page, limit)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		userIDs := make([]primitive.ObjectID, 0, len(result.Items))
		for _, entry := range result.Items {
			userIDs = append(userIDs, entry.User)
		}
		users, err := h.userRefs(c, userIDs)
		if err != nil {
			return basehdl.Fail(c, err)
		}

		items := make([]auditdto.AuditLogResponse, 0, len(result.Items))
		for _, entry := range result.Items {
			resp := auditdto.AuditLogResponse{
				ID:        entry.ID,
				Action:    entry.Action,
				Entity:    entry.Entity,
				EntityID:  entry.EntityID,
				Changes:   entry.Changes,
				IP:        entry.IP,
				UserAgent: entry.UserAgent,
				CreatedAt: entry.CreatedAt,
			}
			if ref, ok := users[entry.User]; ok {
				resp.User = &ref
			}
			items = append(items, resp)
		}

		return basehdl.Success(c, basemodels.PaginateResult[auditdto.AuditLogResponse]{
			Page:      result.Page,
			Limit:     result.Limit,
			ItemCount: result.ItemCount,
			Items:     items,
			Total:     result.Total,
			TotalPage: result.TotalPage,
		})
	})
}

func (h *AuditHandler) userRefs(c fiber.Ctx, ids []primitive.ObjectID) (map[primitive.ObjectID]authdto.UserRef, error) {
	refs := map[primitive.ObjectID]authdto.UserRef{}
	if len(ids) == 0 {
		return refs, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"firstName": 1, "lastName": 1, "email": 1, "avatar": 1,
	})
	cursor, err := h.users.Collection().Find(c.Context(), bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var found []authdto.UserRef
	if err := cursor.All(c.Context(), &found); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	for _, ref := range found {
		refs[ref.ID] = ref
	}
	return refs, nil
}
