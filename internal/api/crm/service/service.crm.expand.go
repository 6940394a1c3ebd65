package crmvc

import (
	"context"

	authdto "nova_crm/internal/api/auth/dto"
	authsvc "nova_crm/internal/api/auth/service"
	crmdto "nova_crm/internal/api/crm/dto"
	crmmodels "nova_crm/internal/api/crm/models"
	"nova_crm/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Expander resolves user, customer and lead references into the compact
// shapes embedded in CRM responses. References are batch fetched once per
// page, not per record.
type Expander struct {
	users     *authsvc.UserService
	customers *CustomerService
	leads     *LeadService
}

// NewExpander wires an Expander over the referenced services.
func NewExpander(users *authsvc.UserService, customers *CustomerService, leads *LeadService) *Expander {
	return &Expander{users: users, customers: customers, leads: leads}
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// userRefs fetches the given users as compact references.
func (e *Expander) userRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]authdto.UserRef, error) {
	refs := map[primitive.ObjectID]authdto.UserRef{}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return refs, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"firstName": 1, "lastName": 1, "email": 1, "avatar": 1,
	})
	cursor, err := e.users.Collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var found []authdto.UserRef
	if err := cursor.All(ctx, &found); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	for _, ref := range found {
		refs[ref.ID] = ref
	}
	return refs, nil
}

// customerRefs fetches the given customers as compact references.
func (e *Expander) customerRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]crmdto.CustomerRef, error) {
	refs := map[primitive.ObjectID]crmdto.CustomerRef{}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return refs, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "company": 1})
	cursor, err := e.customers.Collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var found []crmdto.CustomerRef
	if err := cursor.All(ctx, &found); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	for _, ref := range found {
		refs[ref.ID] = ref
	}
	return refs, nil
}

// leadRefs fetches the given leads as compact references.
func (e *Expander) leadRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]crmdto.LeadRef, error) {
	refs := map[primitive.ObjectID]crmdto.LeadRef{}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return refs, nil
	}

	opts := options.Find().SetProjection(bson.M{"title": 1})
	cursor, err := e.leads.Collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	var found []crmdto.LeadRef
	if err := cursor.All(ctx, &found); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	for _, ref := range found {
		refs[ref.ID] = ref
	}
	return refs, nil
}

func userRefPtr(refs map[primitive.ObjectID]authdto.UserRef, id primitive.ObjectID) *authdto.UserRef {
	if ref, ok := refs[id]; ok {
		return &ref
	}
	return nil
}

// Customers expands a batch of customers into response shapes.
func (e *Expander) Customers(ctx context.Context, customers []crmmodels.Customer) ([]crmdto.CustomerResponse, error) {
	var userIDs []primitive.ObjectID
	for _, c := range customers {
		userIDs = append(userIDs, c.CreatedBy)
		if c.AssignedTo != nil {
			userIDs = append(userIDs, *c.AssignedTo)
		}
	}
	users, err := e.userRefs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]crmdto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp := crmdto.CustomerResponse{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Company:   c.Company,
			Status:    c.Status,
			Address:   c.Address,
			Notes:     c.Notes,
			CreatedBy: userRefPtr(users, c.CreatedBy),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
		if c.AssignedTo != nil {
			resp.AssignedTo = userRefPtr(users, *c.AssignedTo)
		}
		out = append(out, resp)
	}
	return out, nil
}

// Customer expands a single customer.
func (e *Expander) Customer(ctx context.Context, customer crmmodels.Customer) (crmdto.CustomerResponse, error) {
	expanded, err := e.Customers(ctx, []crmmodels.Customer{customer})
	if err != nil {
		return crmdto.CustomerResponse{}, err
	}
	return expanded[0], nil
}

// Leads expands a batch of leads into response shapes.
func (e *Expander) Leads(ctx context.Context, leads []crmmodels.Lead) ([]crmdto.LeadResponse, error) {
	var userIDs, customerIDs []primitive.ObjectID
	for _, l := range leads {
		userIDs = append(userIDs, l.CreatedBy)
		if l.AssignedTo != nil {
			userIDs = append(userIDs, *l.AssignedTo)
		}
		customerIDs = append(customerIDs, l.Customer)
	}
	users, err := e.userRefs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	customers, err := e.customerRefs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]crmdto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		resp := crmdto.LeadResponse{
			ID:          l.ID,
			Title:       l.Title,
			Value:       l.Value,
			Status:      l.Status,
			Source:      l.Source,
			Description: l.Description,
			CreatedBy:   userRefPtr(users, l.CreatedBy),
			ConvertedAt: l.ConvertedAt,
			CreatedAt:   l.CreatedAt,
			UpdatedAt:   l.UpdatedAt,
		}
		if ref, ok := customers[l.Customer]; ok {
			resp.Customer = &ref
		}
		if l.AssignedTo != nil {
			resp.AssignedTo = userRefPtr(users, *l.AssignedTo)
		}
		out = append(out, resp)
	}
	return out, nil
}

// Lead expands a single lead.
func (e *Expander) Lead(ctx context.Context, lead crmmodels.Lead) (crmdto.LeadResponse, error) {
	expanded, err := e.Leads(ctx, []crmmodels.Lead{lead})
	if err != nil {
		return crmdto.LeadResponse{}, err
	}
	return expanded[0], nil
}

// Activities expands a batch of activities into response shapes.
func (e *Expander) Activities(ctx context.Context, activities []crmmodels.Activity) ([]crmdto.ActivityResponse, error) {
	var userIDs, customerIDs, leadIDs []primitive.ObjectID
	for _, a := range activities {
		userIDs = append(userIDs, a.CreatedBy)
		if a.Customer != nil {
			customerIDs = append(customerIDs, *a.Customer)
		}
		if a.Lead != nil {
			leadIDs = append(leadIDs, *a.Lead)
		}
	}
	users, err := e.userRefs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	customers, err := e.customerRefs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	leads, err := e.leadRefs(ctx, leadIDs)
	if err != nil {
		return nil, err
	}

	out := make([]crmdto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		resp := crmdto.ActivityResponse{
			ID:          a.ID,
			Type:        a.Type,
			Subject:     a.Subject,
			Description: a.Description,
			Duration:    a.Duration,
			CreatedBy:   userRefPtr(users, a.CreatedBy),
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		}
		if a.Customer != nil {
			if ref, ok := customers[*a.Customer]; ok {
				resp.Customer = &ref
			}
		}
		if a.Lead != nil {
			if ref, ok := leads[*a.Lead]; ok {
				resp.Lead = &ref
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// Activity expands a single activity.
func (e *Expander) Activity(ctx context.Context, activity crmmodels.Activity) (crmdto.ActivityResponse, error) {
	expanded, err := e.Activities(ctx, []crmmodels.Activity{activity})
	if err != nil {
		return crmdto.ActivityResponse{}, err
	}
	return expanded[0], nil
}
