// Package auditsvc - audit trail recording and queries.
package auditsvc

import (
	"context"
	"fmt"
	"reflect"

	models "nova_crm/internal/api/audit/models"
	basemodels "nova_crm/internal/api/base/models"
	basesvc "nova_crm/internal/api/base/service"
	"nova_crm/internal/common"
	"nova_crm/internal/global"
	"nova_crm/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Entry describes one action to record.
type Entry struct {
	User      primitive.ObjectID
	Action    string
	Entity    string
	EntityID  string
	Changes   map[string]interface{}
	IP        string
	UserAgent string
}

// Recorder writes and queries the audit trail.
type Recorder struct {
	*basesvc.BaseServiceMongoImpl[models.AuditLog]
}

// NewRecorder creates a Recorder bound to the audit collection.
func NewRecorder() (*Recorder, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AuditLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get collection %s: %w", global.MongoDB_ColNames.AuditLogs, common.ErrNotFound)
	}
	return &Recorder{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.AuditLog](coll),
	}, nil
}

// Record persists one audit entry. Auditing is best effort: a failed write
// is logged and never fails the request that triggered it.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	_, err := r.InsertOne(ctx, models.AuditLog{
		User:      entry.User,
		Action:    entry.Action,
		Entity:    entry.Entity,
		EntityID:  entry.EntityID,
		Changes:   entry.Changes,
		IP:        entry.IP,
		UserAgent: entry.UserAgent,
	})
	if err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"action": entry.Action,
			"entity": entry.Entity,
		}).WithError(err).Error("failed to record audit entry")
	}
}

// BuildChanges diffs the applied $set map against the previous document
// and returns per-field {from, to} pairs. Unchanged fields are dropped.
func BuildChanges(before map[string]interface{}, set map[string]interface{}) map[string]interface{} {
	changes := map[string]interface{}{}
	for field, to := range set {
		from, had := before[field]
		if had && reflect.DeepEqual(from, to) {
			continue
		}
		changes[field] = map[string]interface{}{"from": from, "to": to}
	}
	if len(changes) == 0 {
		return nil
	}
	return changes
}

// UpdateChanges flattens the previous model and diffs the applied $set
// against it. A nil result means the applied values matched the stored ones.
func UpdateChanges(before interface{}, set map[string]interface{}) map[string]interface{} {
	doc, err := ToDocument(before)
	if err != nil {
		return nil
	}
	return BuildChanges(doc, set)
}

// ToDocument flattens a model into the field map BuildChanges diffs against.
func ToDocument(model interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(model)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListFilter builds the find filter for querying the audit trail.
func ListFilter(entity, action string) bson.M {
	filter := bson.M{}
	if entity != "" {
		filter["entity"] = entity
	}
	if action != "" {
		filter["action"] = action
	}
	return filter
}

// List returns a page of audit entries, newest first.
func (r *Recorder) List(ctx context.Context, entity, action string, page, limit int64) (*basemodels.PaginateResult[models.AuditLog], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.FindWithPagination(ctx, ListFilter(entity, action), page, limit, opts)
}
