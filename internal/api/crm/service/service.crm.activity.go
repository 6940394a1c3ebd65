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

// ActivityService manages the activity log (crm_activities). Activities
// are immutable, there is no update path.
type ActivityService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Activity]
	customers *CustomerService
	leads     *LeadService
}

// NewActivityService creates an ActivityService bound to the activities collection.
func NewActivityService(customers *CustomerService, leads *LeadService) (*ActivityService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Activities)
	if !exist {
		return nil, fmt.Errorf("failed to get collection %s: %w", global.MongoDB_ColNames.Activities, common.ErrNotFound)
	}
	return &ActivityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Activity](coll),
		customers:            customers,
		leads:                leads,
	}, nil
}

// ActivityListFilter builds the find filter for listing activities.
func ActivityListFilter(activityType, customerID, leadID string) (bson.M, error) {
	filter := bson.M{}
	if activityType != "" {
		filter["type"] = activityType
	}
	if customerID != "" {
		id, err := primitive.ObjectIDFromHex(customerID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Invalid customer id", common.StatusBadRequest, nil)
		}
		filter["customer"] = id
	}
	if leadID != "" {
		id, err := primitive.ObjectIDFromHex(leadID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, "Invalid lead id", common.StatusBadRequest, nil)
		}
		filter["lead"] = id
	}
	return filter, nil
}

// Create validates and inserts a new activity. Referenced records must exist.
func (s *ActivityService) Create(ctx context.Context, input *crmdto.ActivityCreateInput, createdBy primitive.ObjectID) (crmmodels.Activity, error) {
	var zero crmmodels.Activity

	if !crmmodels.ValidActivityType(input.Type) {
		return zero, common.NewError(common.ErrCodeValidationInput, "Invalid activity type", common.StatusBadRequest, nil)
	}

	activity := crmmodels.Activity{
		Type:        input.Type,
		Subject:     strings.TrimSpace(input.Subject),
		Description: input.Description,
		Duration:    input.Duration,
		CreatedBy:   createdBy,
	}

	if input.Customer != "" {
		customerID, err := primitive.ObjectIDFromHex(input.Customer)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat, "Invalid customer id", common.StatusBadRequest, nil)
		}
		if _, err := s.customers.FindOneById(ctx, customerID); err != nil {
			return zero, err
		}
		activity.Customer = &customerID
	}
	if input.Lead != "" {
		leadID, err := primitive.ObjectIDFromHex(input.Lead)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat, "Invalid lead id", common.StatusBadRequest, nil)
		}
		if _, err := s.leads.FindOneById(ctx, leadID); err != nil {
			return zero, err
		}
		activity.Lead = &leadID
	}

	return s.InsertOne(ctx, activity)
}

// List returns a page of activities, newest first.
func (s *ActivityService) List(ctx context.Context, activityType, customerID, leadID string, page, limit int64) (*basemodels.PaginateResult[crmmodels.Activity], error) {
	filter, err := ActivityListFilter(activityType, customerID, leadID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}
