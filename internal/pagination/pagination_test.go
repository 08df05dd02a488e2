package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c, 10)
}

func TestFromContextDefaultsAndClamping(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = paramsFor(t, "page=3&page_size=25")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset())

	p = paramsFor(t, "page=-1&page_size=1000")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
}

func TestNewPageMarkers(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 25, Params{Page: 2, Limit: 10})
	assert.Equal(t, int64(25), page.Count)
	assert.Equal(t, 3, page.TotalPages)
	if assert.NotNil(t, page.Next) {
		assert.Equal(t, 3, *page.Next)
	}
	if assert.NotNil(t, page.Previous) {
		assert.Equal(t, 1, *page.Previous)
	}

	first := NewPage(nil, 5, Params{Page: 1, Limit: 10})
	assert.Nil(t, first.Next)
	assert.Nil(t, first.Previous)
}
