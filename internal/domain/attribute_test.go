package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amellouk/souq/internal/domain"
)

func TestAttributeValueUnmarshal(t *testing.T) {
	var m domain.AttributeMap
	raw := `{"brand":"Sony","screenInches":6.1,"dualSim":true}`
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, domain.StringValue("Sony"), m["brand"])
	assert.Equal(t, domain.NumberValue(6.1), m["screenInches"])
	assert.Equal(t, domain.BooleanValue(true), m["dualSim"])
}

func TestAttributeValueRejectsNull(t *testing.T) {
	var m domain.AttributeMap
	err := json.Unmarshal([]byte(`{"dualSim":null}`), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be null")

	var v domain.AttributeValue
	assert.Error(t, v.UnmarshalJSON([]byte(" null ")))
	assert.Error(t, v.UnmarshalJSON([]byte(`{"nested":1}`)), "objects are not scalar values")
}

func TestAttributeValueDateCoercion(t *testing.T) {
	day, ok := domain.StringValue("2024-05-10").AsDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), day)

	_, ok = domain.StringValue("not a date").AsDate()
	assert.False(t, ok)

	assert.True(t, domain.StringValue("2024-05-10T12:00:00Z").Matches(domain.AttributeDate))
	assert.False(t, domain.NumberValue(20240510).Matches(domain.AttributeDate))
}
