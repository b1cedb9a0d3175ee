package routes

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStationNameFilterQuotesRegexInput(t *testing.T) {
	filter := stationNameFilter("King's (Cross")

	nameFilter, ok := filter["name"].(bson.M)
	require.True(t, ok)

	pattern, ok := nameFilter["$regex"].(string)
	require.True(t, ok)

	assert.Equal(t, `^King's \(Cross`, pattern)

	// An unbalanced bracket straight from the query string must still be a
	// valid pattern
	_, err := regexp.Compile(pattern)
	assert.NoError(t, err)
}

func TestStationNameFilterAnchorsPrefix(t *testing.T) {
	filter := stationNameFilter("york")

	nameFilter := filter["name"].(bson.M)

	assert.Equal(t, "^york", nameFilter["$regex"])
	assert.Equal(t, "i", nameFilter["$options"])
}
