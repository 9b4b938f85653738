package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A nil redis client must behave like a cache that never hits.
func TestNilClientDegrades(t *testing.T) {
	c := New(nil, nil)

	var dest map[string]int
	assert.False(t, c.GetJSON(context.Background(), SearchKey("q=x"), &dest))
	c.SetJSON(context.Background(), SearchKey("q=x"), map[string]int{"a": 1})
	assert.False(t, c.GetJSON(context.Background(), SearchKey("q=x"), &dest))
}

func TestSearchKeyIsStable(t *testing.T) {
	assert.Equal(t, SearchKey("q=jazz|page=1"), SearchKey("q=jazz|page=1"))
	assert.NotEqual(t, SearchKey("q=jazz|page=1"), SearchKey("q=jazz|page=2"))
}
