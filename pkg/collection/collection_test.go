package collection_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderdesk/pkg/collection"
)

func TestMap(t *testing.T) {
	ids := collection.Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	none := collection.Map([]int(nil), strconv.Itoa)
	assert.NotNil(t, none, "empty input maps to an empty slice, not nil")
	assert.Empty(t, none)
}
