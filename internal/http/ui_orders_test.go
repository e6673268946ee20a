package httpx

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderFilter(t *testing.T) {
	f, err := ParseOrderFilter(url.Values{"search": {"  ORD-1 "}, "status": {" Shipped "}})
	require.NoError(t, err)
	assert.Equal(t, OrderFilter{Search: "ORD-1", Status: "shipped"}, f)

	f, err = ParseOrderFilter(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, OrderFilter{}, f)

	f, err = ParseOrderFilter(url.Values{"search": {"ada"}, "status": {"lost"}})
	require.Error(t, err)
	assert.Equal(t, OrderFilter{Search: "ada"}, f)
}

func TestOrderPath(t *testing.T) {
	assert.Equal(t, "/orders/17", orderPath(17))
}
