package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderShowsListsInOrder(t *testing.T) {
	out := NewRenderer().Render(ViewState{
		Input:   "> cat",
		Results: []string{"cat1", "cat2"},
		History: []string{"cat", "dog"},
	})

	assert.Contains(t, out, "searchgrip")
	assert.Contains(t, out, "Search")
	i1, i2 := strings.Index(out, "cat1"), strings.Index(out, "cat2")
	assert.True(t, i1 >= 0 && i2 > i1)
	h := strings.Index(out, "Search history")
	assert.Greater(t, h, i2, "history comes after results")
	assert.Greater(t, strings.LastIndex(out, "dog"), h)
}

func TestRenderNoticeAndBusy(t *testing.T) {
	out := NewRenderer().Render(ViewState{Notice: "search: network error", InFlight: 2, Spinner: "*"})
	assert.Contains(t, out, "search: network error")
	assert.Contains(t, out, "Searching 2")
}

func TestRenderEmptyLists(t *testing.T) {
	out := NewRenderer().Render(ViewState{})
	assert.Equal(t, 2, strings.Count(out, "(empty)"))
	assert.NotContains(t, out, "Searching")
}

func TestPagerContent(t *testing.T) {
	out := NewRenderer().PagerContent([]string{"cat1"}, []string{"cat"})
	assert.Contains(t, out, "cat1")
	assert.Contains(t, out, "Search history")
}
