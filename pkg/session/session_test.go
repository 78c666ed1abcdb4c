package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailerdl/pkg/catalog"
)

func makeVideos(n int) []catalog.Video {
	videos := make([]catalog.Video, n)
	for i := range videos {
		videos[i] = catalog.Video{
			URL:   fmt.Sprintf("https://example.com/video/%d", i),
			Title: fmt.Sprintf("Video %d", i),
		}
	}
	return videos
}

func TestStartValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		valid bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \t ", false},
		{"plain name", "Jane Doe", true},
		{"padded name", "  Jane Doe  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Session
			err := s.Start(tt.query)
			if !tt.valid {
				require.Error(t, err)
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.False(t, s.Active())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane Doe", s.Query)
			assert.Equal(t, 1, s.Page)
			assert.True(t, s.HasMore)
			assert.Empty(t, s.Accumulated)
		})
	}
}

func TestStartResetsPriorState(t *testing.T) {
	var s Session
	require.NoError(t, s.Start("Jane Doe"))
	s.ApplyPage(makeVideos(10), true)
	s.NextPage()
	s.ApplyPage(makeVideos(3), false)

	assert.Equal(t, 2, s.Page)
	assert.False(t, s.HasMore)
	assert.Len(t, s.Accumulated, 13)

	// Starting again always yields a pristine session.
	require.NoError(t, s.Start("Mary Major"))
	assert.Equal(t, "Mary Major", s.Query)
	assert.Equal(t, 1, s.Page)
	assert.True(t, s.HasMore)
	assert.Empty(t, s.Accumulated)
}

func TestApplyPageReplaceAndAppend(t *testing.T) {
	var s Session
	require.NoError(t, s.Start("Jane Doe"))

	first := makeVideos(10)
	shown := s.ApplyPage(first, true)
	assert.Equal(t, 10, shown)
	assert.Equal(t, first, s.Accumulated)

	s.NextPage()
	assert.Equal(t, 2, s.Page)

	second := makeVideos(3)
	shown = s.ApplyPage(second, false)
	assert.Equal(t, 3, shown)
	require.Len(t, s.Accumulated, 13)
	// Appended pages keep arrival order.
	assert.Equal(t, first, s.Accumulated[:10])
	assert.Equal(t, second, s.Accumulated[10:])

	// A fresh clear page replaces rather than appends.
	shown = s.ApplyPage(makeVideos(2), true)
	assert.Equal(t, 2, shown)
	assert.Len(t, s.Accumulated, 2)
}

func TestHasMoreHeuristic(t *testing.T) {
	tests := []struct {
		count   int
		hasMore bool
	}{
		{0, false},
		{1, false},
		{9, false},
		{10, true},
		{11, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d videos", tt.count), func(t *testing.T) {
			var s Session
			require.NoError(t, s.Start("Jane Doe"))
			s.ApplyPage(makeVideos(tt.count), true)
			assert.Equal(t, tt.hasMore, s.HasMore)
		})
	}
}

func TestHasMoreLatchesFalse(t *testing.T) {
	var s Session
	require.NoError(t, s.Start("Jane Doe"))

	s.ApplyPage(makeVideos(3), true)
	assert.False(t, s.HasMore)

	// Even a later full page cannot revive HasMore within the session.
	s.ApplyPage(makeVideos(10), false)
	assert.False(t, s.HasMore)
}

func TestShortPageStillDeliversVideos(t *testing.T) {
	var s Session
	require.NoError(t, s.Start("Jane Doe"))

	// "Last page" and "has results" are independent facts.
	shown := s.ApplyPage(makeVideos(4), true)
	assert.Equal(t, 4, shown)
	assert.Len(t, s.Accumulated, 4)
	assert.False(t, s.HasMore)
}
