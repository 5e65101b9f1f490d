package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

func TestSavedSearch_Lifecycle(t *testing.T) {
	e := newTestEngine(testRecord(1, 1, "alpha-api"), testRecord(2, 1, "frontend"))

	ss := e.SaveSearch("api projects", Query{Text: "api"}, false)
	require.NotEmpty(t, ss.ID)
	assert.Zero(t, ss.UseCount)

	res, err := e.ExecuteSavedSearch(context.Background(), ss.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount)
	assert.Equal(t, "api", res.Query.Text)

	// Execution bumps the usage bookkeeping on the stored copy.
	saved := e.SavedSearches()
	require.Len(t, saved, 1)
	assert.Equal(t, 1, saved[0].UseCount)
	assert.False(t, saved[0].LastUsedAt.IsZero())

	require.NoError(t, e.DeleteSavedSearch(ss.ID))
	assert.Empty(t, e.SavedSearches())
}

func TestSavedSearch_NotFound(t *testing.T) {
	e := New()

	_, err := e.ExecuteSavedSearch(context.Background(), "missing")
	var nf *ErrSavedSearchNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)

	err = e.DeleteSavedSearch("missing")
	require.ErrorAs(t, err, &nf)
}

func TestSavedSearch_ExecutionFailurePropagates(t *testing.T) {
	e := New(func(o *Options) { o.Timeout = 1 })
	e.UpdateIndex([]model.Record{testRecord(1, 1, "alpha")})

	ss := e.SaveSearch("doomed", Query{Text: "alpha"}, false)
	_, err := e.ExecuteSavedSearch(context.Background(), ss.ID)

	var te *ErrTimeout
	require.ErrorAs(t, err, &te)
}
