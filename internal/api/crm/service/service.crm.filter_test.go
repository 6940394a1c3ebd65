package crmvc

import (
	"testing"

	crmdto "nova_crm/internal/api/crm/dto"
	crmmodels "nova_crm/internal/api/crm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCustomerListFilter(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, bson.M{}, CustomerListFilter("", ""))
	})

	t.Run("status only", func(t *testing.T) {
		filter := CustomerListFilter("", crmmodels.CustomerStatusActive)
		assert.Equal(t, bson.M{"status": "ACTIVE"}, filter)
	})

	t.Run("search matches name email company", func(t *testing.T) {
		filter := CustomerListFilter("acme", "")
		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 3)

		fields := make([]string, 0, 3)
		for _, clause := range or {
			m := clause.(bson.M)
			for field, v := range m {
				fields = append(fields, field)
				re := v.(primitive.Regex)
				assert.Equal(t, "acme", re.Pattern)
				assert.Equal(t, "i", re.Options)
			}
		}
		assert.ElementsMatch(t, []string{"name", "email", "company"}, fields)
	})

	t.Run("regex metacharacters are quoted", func(t *testing.T) {
		filter := CustomerListFilter("a.b+c", "")
		or := filter["$or"].(bson.A)
		re := or[0].(bson.M)["name"].(primitive.Regex)
		assert.Equal(t, `a\.b\+c`, re.Pattern)
	})
}

func TestLeadListFilter(t *testing.T) {
	filter := LeadListFilter("referral", crmmodels.LeadStatusNew)
	assert.Equal(t, "NEW", filter["status"])

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	fields := make([]string, 0, 2)
	for _, clause := range or {
		for field := range clause.(bson.M) {
			fields = append(fields, field)
		}
	}
	assert.ElementsMatch(t, []string{"title", "description"}, fields)
}

func TestActivityListFilter(t *testing.T) {
	customerID := primitive.NewObjectID()

	filter, err := ActivityListFilter(crmmodels.ActivityTypeCall, customerID.Hex(), "")
	require.NoError(t, err)
	assert.Equal(t, "CALL", filter["type"])
	assert.Equal(t, customerID, filter["customer"])

	_, err = ActivityListFilter("", "not-an-id", "")
	assert.Error(t, err)
}

func TestCustomerUpdateSet(t *testing.T) {
	name := "  Acme Corp  "
	email := "Sales@Acme.COM"
	badStatus := "SOMETHING"

	set, err := CustomerUpdateSet(&crmdto.CustomerUpdateInput{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", set["name"])
	assert.Equal(t, "sales@acme.com", set["email"])
	assert.NotContains(t, set, "status")

	_, err = CustomerUpdateSet(&crmdto.CustomerUpdateInput{Status: &badStatus})
	assert.Error(t, err)

	unassign := ""
	set, err = CustomerUpdateSet(&crmdto.CustomerUpdateInput{AssignedTo: &unassign})
	require.NoError(t, err)
	assert.Nil(t, set["assignedTo"])
}

func TestLeadUpdateSetSource(t *testing.T) {
	current := crmmodels.Lead{Status: crmmodels.LeadStatusNew}

	bad := "NEWSPAPER"
	_, err := LeadUpdateSet(&crmdto.LeadUpdateInput{Source: &bad}, &current, 0)
	assert.Error(t, err)

	good := crmmodels.LeadSourceReferral
	set, err := LeadUpdateSet(&crmdto.LeadUpdateInput{Source: &good}, &current, 0)
	require.NoError(t, err)
	assert.Equal(t, "REFERRAL", set["source"])
}

func TestLeadUpdateSetConvertedAt(t *testing.T) {
	converted := crmmodels.LeadStatusConverted
	contacted := crmmodels.LeadStatusContacted
	now := int64(1700000000000)

	t.Run("stamped on transition into converted", func(t *testing.T) {
		current := crmmodels.Lead{Status: crmmodels.LeadStatusQualified}
		set, err := LeadUpdateSet(&crmdto.LeadUpdateInput{Status: &converted}, &current, now)
		require.NoError(t, err)
		assert.Equal(t, now, set["convertedAt"])
	})

	t.Run("not restamped when already converted", func(t *testing.T) {
		earlier := now - 1000
		current := crmmodels.Lead{Status: crmmodels.LeadStatusConverted, ConvertedAt: &earlier}
		set, err := LeadUpdateSet(&crmdto.LeadUpdateInput{Status: &converted}, &current, now)
		require.NoError(t, err)
		assert.NotContains(t, set, "convertedAt")
	})

	t.Run("kept after moving back out of converted", func(t *testing.T) {
		earlier := now - 1000
		current := crmmodels.Lead{Status: crmmodels.LeadStatusConverted, ConvertedAt: &earlier}
		set, err := LeadUpdateSet(&crmdto.LeadUpdateInput{Status: &contacted}, &current, now)
		require.NoError(t, err)
		assert.Equal(t, "CONTACTED", set["status"])
		assert.NotContains(t, set, "convertedAt")
	})
}
