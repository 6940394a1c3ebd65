package auditsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildChanges(t *testing.T) {
	before := map[string]interface{}{
		"name":   "Acme",
		"status": "INACTIVE",
		"phone":  "123",
	}

	t.Run("changed fields get from and to", func(t *testing.T) {
		changes := BuildChanges(before, map[string]interface{}{
			"status": "ACTIVE",
			"phone":  "123",
		})
		require.NotNil(t, changes)
		assert.Len(t, changes, 1)

		diff := changes["status"].(map[string]interface{})
		assert.Equal(t, "INACTIVE", diff["from"])
		assert.Equal(t, "ACTIVE", diff["to"])
	})

	t.Run("new fields have nil from", func(t *testing.T) {
		changes := BuildChanges(before, map[string]interface{}{"company": "Acme Inc"})
		diff := changes["company"].(map[string]interface{})
		assert.Nil(t, diff["from"])
		assert.Equal(t, "Acme Inc", diff["to"])
	})

	t.Run("no changes yields nil", func(t *testing.T) {
		assert.Nil(t, BuildChanges(before, map[string]interface{}{"name": "Acme"}))
		assert.Nil(t, BuildChanges(before, map[string]interface{}{}))
	})
}

func TestUpdateChanges(t *testing.T) {
	type record struct {
		Name   string `bson:"name"`
		Status string `bson:"status"`
	}
	current := record{Name: "Acme", Status: "ACTIVE"}

	t.Run("changed field diffs against the stored document", func(t *testing.T) {
		changes := UpdateChanges(current, map[string]interface{}{"status": "CHURNED"})
		require.NotNil(t, changes)

		diff := changes["status"].(map[string]interface{})
		assert.Equal(t, "ACTIVE", diff["from"])
		assert.Equal(t, "CHURNED", diff["to"])
	})

	t.Run("no-op set yields nil", func(t *testing.T) {
		assert.Nil(t, UpdateChanges(current, map[string]interface{}{"name": "Acme"}))
	})
}

func TestListFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, ListFilter("", ""))
	assert.Equal(t, bson.M{"entity": "Customer"}, ListFilter("Customer", ""))
	assert.Equal(t, bson.M{"entity": "Lead", "action": "DELETE"}, ListFilter("Lead", "DELETE"))
}
