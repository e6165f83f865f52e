package viewmodel

import (
	"testing"
	"time"

	"github.com/Veraticus/procure/internal/app"
	"github.com/Veraticus/procure/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppState_IsReady(t *testing.T) {
	assert.False(t, StateLoading.IsReady())
	assert.False(t, StateError.IsReady())
	assert.True(t, StateBrowsing.IsReady())
	assert.True(t, StateSubmitting.IsReady())
}

func TestNewHomeView(t *testing.T) {
	session := model.Session{Token: "tok", Username: "kim", Alias: "Kim"}
	keys := map[app.Route]string{app.RouteCatalog: "b"}

	home := NewHomeView(session, app.RouteCatalog, keys)

	assert.Equal(t, "Welcome, Kim !", home.Welcome)
	require.Len(t, home.Nav, len(app.PrivateRoutes()))
	for _, entry := range home.Nav {
		assert.Equal(t, entry.Route == app.RouteCatalog, entry.IsActive, entry.Title)
	}
	assert.Equal(t, "b", home.Nav[1].Key)
	assert.Equal(t, "Catalog", home.Nav[1].Title)
}

func TestNewSubmissionViews(t *testing.T) {
	at := time.Date(2026, 5, 1, 8, 30, 0, 0, time.Local)
	subs := []model.Submission{
		{
			ID:          "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
			Owner:       "kim",
			SubmittedAt: at,
			Status:      model.SubmissionSucceeded,
			Lines:       []model.CartLine{{ItemsID: "i1", Quantity: 2}, {ItemsID: "i4", Quantity: 3}},
		},
		{
			ID:          "sub-2",
			Owner:       "kim",
			SubmittedAt: at,
			Status:      model.SubmissionFailed,
			Error:       "cart request rejected:\n500",
			Lines:       []model.CartLine{{ItemsID: "i1", Quantity: 1}},
		},
	}

	views := NewSubmissionViews(subs)
	require.Len(t, views, 2)

	assert.Equal(t, SubmissionView{
		ID:       "6ba7b810",
		When:     "2026-05-01 08:30",
		Owner:    "kim",
		Status:   "succeeded",
		Lines:    2,
		Quantity: 5,
	}, views[0])

	assert.True(t, views[1].Failed)
	assert.Equal(t, "cart request rejected: 500", views[1].Error)
	assert.Empty(t, NewSubmissionViews(nil))
}
