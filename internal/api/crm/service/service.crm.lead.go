package crmvc

import (
	"context"
	"fmt"
	"strings"

	crmdto "nova_crm/internal/api/crm/dto"
	crmmodels "nova_crm/internal/api/crm/models"
	basemodels "nova_crm/internal/api/base/models"
	basesvc "nova_crm/internal/api/base/service"
	"nova_crm/internal/common"
	"nova_crm/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeadService manages the sales pipeline (crm_leads).
type LeadService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Lead]
	customers *CustomerService
}

// NewLeadService creates a LeadService bound to the leads collection.
func NewLeadService(customers *CustomerService) (*LeadService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Leads)
	if !exist {
		return nil, fmt.Errorf("failed to get collection %s: %w", global.MongoDB_ColNames.Leads, common.ErrNotFound)
	}
	return &LeadService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Lead](coll),
		customers:            customers,
	}, nil
}

// LeadListFilter builds the find filter for listing leads.
// A search term matches title or description.
func LeadListFilter(search, status string) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if strings.TrimSpace(search) != "" {
		re := searchRegex(search)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}
	return filter
}

// Create validates and inserts a new lead. The referenced customer must exist.
func (s *LeadService) Create(ctx context.Context, input *crmdto.LeadCreateInput, createdBy primitive.ObjectID) (crmmodels.Lead, error) {
	var zero crmmodels.Lead

	customerID, err := primitive.ObjectIDFromHex(input.Customer)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, "Invalid customer id", common.StatusBadRequest, nil)
	}
	if _, err := s.customers.FindOneById(ctx, customerID); err != nil {
		return zero, err
	}

	status := input.Status
	if status == "" {
		status = crmmodels.LeadStatusNew
	}
	if !crmmodels.ValidLeadStatus(status) {
		return zero, common.NewError(common.ErrCodeValidationInput, "Invalid lead status", common.StatusBadRequest, nil)
	}

	source := input.Source
	if source == "" {
		source = crmmodels.LeadSourceOther
	}
	if !crmmodels.ValidLeadSource(source) {
		return zero, common.NewError(common.ErrCodeValidationInput, "Invalid lead source", common.StatusBadRequest, nil)
	}

	lead := crmmodels.Lead{
		Title:       strings.TrimSpace(input.Title),
		Customer:    customerID,
		Value:       input.Value,
		Status:      status,
		Source:      source,
		Description: input.Description,
		CreatedBy:   createdBy,
	}
	if status == crmmodels.LeadStatusConverted {
		ts := nowMilli()
		lead.ConvertedAt = &ts
	}

	if input.AssignedTo != "" {
		assignee, err := primitive.ObjectIDFromHex(input.AssignedTo)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat, "Invalid assignee id", common.StatusBadRequest, nil)
		}
		lead.AssignedTo = &assignee
	}

	return s.InsertOne(ctx, lead)
}

// List returns a page of leads, newest first.
func (s *LeadService) List(ctx context.Context, search, status string, page, limit int64) (*basemodels.PaginateResult[crmmodels.Lead], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, LeadListFilter(search, status), page, limit, opts)
}

// LeadUpdateSet converts a lead update payload into the $set map.
// convertedAt is stamped exactly once, on the transition into CONVERTED.
func LeadUpdateSet(input *crmdto.LeadUpdateInput, current *crmmodels.Lead, now int64) (map[string]interface{}, error) {
	set := map[string]interface{}{}
	if input.Title != nil {
		set["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Customer != nil {
		customerID, err := primitive.ObjectIDFromHex(*input.Customer)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Invalid customer id", common.StatusBadRequest, nil)
		}
		set["customer"] = customerID
	}
	if input.Value != nil {
		set["value"] = *input.Value
	}
	if input.Status != nil {
		if !crmmodels.ValidLeadStatus(*input.Status) {
			return nil, common.NewError(common.ErrCodeValidationInput, "Invalid lead status", common.StatusBadRequest, nil)
		}
		set["status"] = *input.Status
		if *input.Status == crmmodels.LeadStatusConverted &&
			current.Status != crmmodels.LeadStatusConverted && current.ConvertedAt == nil {
			set["convertedAt"] = now
		}
	}
	if input.Source != nil {
		if !crmmodels.ValidLeadSource(*input.Source) {
			return nil, common.NewError(common.ErrCodeValidationInput, "Invalid lead source", common.StatusBadRequest, nil)
		}
		set["source"] = *input.Source
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.AssignedTo != nil {
		if *input.AssignedTo == "" {
			set["assignedTo"] = nil
		} else {
			assignee, err := primitive.ObjectIDFromHex(*input.AssignedTo)
			if err != nil {
				return nil, common.NewError(common.ErrCodeValidationFormat, "Invalid assignee id", common.StatusBadRequest, nil)
			}
			set["assignedTo"] = assignee
		}
	}
	return set, nil
}

// Update applies the allow-list update and returns the stored lead.
func (s *LeadService) Update(ctx context.Context, id primitive.ObjectID, input *crmdto.LeadUpdateInput) (crmmodels.Lead, error) {
	var zero crmmodels.Lead

	current, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	set, err := LeadUpdateSet(input, &current, nowMilli())
	if err != nil {
		return zero, err
	}
	if customerID, ok := set["customer"].(primitive.ObjectID); ok {
		if _, err := s.customers.FindOneById(ctx, customerID); err != nil {
			return zero, err
		}
	}
	if len(set) == 0 {
		return current, nil
	}
	return s.UpdateById(ctx, id, basesvc.UpdateData{Set: set})
}

// Stats aggregates the pipeline grouped by status.
func (s *LeadService) Stats(ctx context.Context) (*crmdto.LeadStatsResponse, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"value": bson.M{"$sum": "$value"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	var buckets []crmdto.LeadStatusStat
	if err := s.Aggregate(ctx, pipeline, &buckets); err != nil {
		return nil, err
	}

	resp := &crmdto.LeadStatsResponse{ByStatus: buckets}
	if resp.ByStatus == nil {
		resp.ByStatus = []crmdto.LeadStatusStat{}
	}
	for _, b := range buckets {
		resp.TotalLeads += b.Count
		resp.TotalValue += b.Value
	}
	return resp, nil
}
