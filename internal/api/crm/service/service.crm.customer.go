// Package crmvc - CRM services: customers, leads and activities.
package crmvc

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

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

// CustomerService manages CRM customers (crm_customers).
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[crmmodels.Customer]
}

// NewCustomerService creates a CustomerService bound to the customers collection.
func NewCustomerService() (*CustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("failed to get collection %s: %w", global.MongoDB_ColNames.Customers, common.ErrNotFound)
	}
	return &CustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crmmodels.Customer](coll),
	}, nil
}

// searchRegex builds a case-insensitive substring matcher for a user query.
// The query is quoted so regex metacharacters in it match literally.
func searchRegex(query string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(query)), Options: "i"}
}

// CustomerListFilter builds the find filter for listing customers.
// A search term matches name, email or company.
func CustomerListFilter(search, status string) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if strings.TrimSpace(search) != "" {
		re := searchRegex(search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"company": re},
		}
	}
	return filter
}

// Create validates and inserts a new customer for the given creator.
func (s *CustomerService) Create(ctx context.Context, input *crmdto.CustomerCreateInput, createdBy primitive.ObjectID) (crmmodels.Customer, error) {
	var zero crmmodels.Customer

	status := input.Status
	if status == "" {
		status = crmmodels.CustomerStatusActive
	}
	if !crmmodels.ValidCustomerStatus(status) {
		return zero, common.NewError(common.ErrCodeValidationInput, "Invalid customer status", common.StatusBadRequest, nil)
	}

	customer := crmmodels.Customer{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     input.Phone,
		Company:   input.Company,
		Status:    status,
		Address:   input.Address,
		Notes:     input.Notes,
		CreatedBy: createdBy,
	}

	if input.AssignedTo != "" {
		assignee, err := primitive.ObjectIDFromHex(input.AssignedTo)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat, "Invalid assignee id", common.StatusBadRequest, nil)
		}
		customer.AssignedTo = &assignee
	}

	return s.InsertOne(ctx, customer)
}

// List returns a page of customers, newest first.
func (s *CustomerService) List(ctx context.Context, search, status string, page, limit int64) (*basemodels.PaginateResult[crmmodels.Customer], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, CustomerListFilter(search, status), page, limit, opts)
}

// CustomerUpdateSet converts a customer update payload into the $set map.
// Only fields present in the payload are touched.
func CustomerUpdateSet(input *crmdto.CustomerUpdateInput) (map[string]interface{}, error) {
	set := map[string]interface{}{}
	if input.Name != nil {
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}
	if input.Company != nil {
		set["company"] = *input.Company
	}
	if input.Status != nil {
		if !crmmodels.ValidCustomerStatus(*input.Status) {
			return nil, common.NewError(common.ErrCodeValidationInput, "Invalid customer status", common.StatusBadRequest, nil)
		}
		set["status"] = *input.Status
	}
	if input.Address != nil {
		set["address"] = *input.Address
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
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

// Update applies the allow-list update and returns the stored customer.
func (s *CustomerService) Update(ctx context.Context, id primitive.ObjectID, input *crmdto.CustomerUpdateInput) (crmmodels.Customer, error) {
	var zero crmmodels.Customer

	set, err := CustomerUpdateSet(input)
	if err != nil {
		return zero, err
	}
	if len(set) == 0 {
		return s.FindOneById(ctx, id)
	}
	return s.UpdateById(ctx, id, basesvc.UpdateData{Set: set})
}

// nowMilli is the timestamp helper shared by the CRM services.
func nowMilli() int64 {
	return time.Now().UnixMilli()
}
