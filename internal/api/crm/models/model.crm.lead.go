package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead status values, ordered as pipeline stages.
const (
	LeadStatusNew         = "NEW"
	LeadStatusContacted   = "CONTACTED"
	LeadStatusQualified   = "QUALIFIED"
	LeadStatusProposal    = "PROPOSAL"
	LeadStatusNegotiation = "NEGOTIATION"
	LeadStatusConverted   = "CONVERTED"
	LeadStatusLost        = "LOST"
)

// Lead source values
const (
	LeadSourceWebsite     = "WEBSITE"
	LeadSourceReferral    = "REFERRAL"
	LeadSourceColdCall    = "COLD_CALL"
	LeadSourceEmail       = "EMAIL"
	LeadSourceSocialMedia = "SOCIAL_MEDIA"
	LeadSourceOther       = "OTHER"
)

// Lead is a sales opportunity tied to a customer (crm_leads).
type Lead struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string              `json:"title" bson:"title" index:"single"`
	Customer    primitive.ObjectID  `json:"customer" bson:"customer" index:"single"`
	Value       float64             `json:"value" bson:"value"`
	Status      string              `json:"status" bson:"status" index:"single"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Source      string              `json:"source" bson:"source"`
	AssignedTo  *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty" index:"single"`
	CreatedBy   primitive.ObjectID  `json:"createdBy" bson:"createdBy"`
	ConvertedAt *int64              `json:"convertedAt,omitempty" bson:"convertedAt,omitempty"`
	CreatedAt   int64               `json:"createdAt" bson:"createdAt" index:"single;order:-1"`
	UpdatedAt   int64               `json:"updatedAt" bson:"updatedAt"`
}

// ValidLeadStatus reports whether status is a known lead status.
func ValidLeadStatus(status string) bool {
	switch status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusProposal,
		LeadStatusNegotiation, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// ValidLeadSource reports whether source is a known lead source.
func ValidLeadSource(source string) bool {
	switch source {
	case LeadSourceWebsite, LeadSourceReferral, LeadSourceColdCall,
		LeadSourceEmail, LeadSourceSocialMedia, LeadSourceOther:
		return true
	}
	return false
}
