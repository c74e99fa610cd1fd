package commentview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usyj/makgora-client/internal/domain"
)

func ptr(v int64) *int64 { return &v }

func testThread() []domain.Comment {
	return []domain.Comment{
		{
			ID: 1, UserID: 7, Nickname: "alpha", Content: "first",
			Children: []domain.Comment{
				{ID: 2, ParentID: ptr(1), UserID: 8, Nickname: "beta", Content: "reply"},
				{
					ID: 3, ParentID: ptr(1), UserID: 7, Content: "gone", Deleted: true,
					Children: []domain.Comment{
						{ID: 4, ParentID: ptr(3), UserID: 9, Content: "orphan reply"},
					},
				},
			},
		},
		{ID: 5, UserID: 9, Content: "second root"},
	}
}

func TestAnnotateDepths(t *testing.T) {
	thread := Annotate(testThread(), 0)

	require.Len(t, thread.Roots, 2)
	assert.Equal(t, 0, thread.Roots[0].Depth)
	require.Len(t, thread.Roots[0].Children, 2)
	assert.Equal(t, 1, thread.Roots[0].Children[0].Depth)
	assert.Equal(t, 2, thread.Roots[0].Children[1].Children[0].Depth)
}

func TestAnnotateOwnership(t *testing.T) {
	thread := Annotate(testThread(), 7)

	assert.True(t, thread.Roots[0].Own)
	assert.True(t, thread.Roots[0].Editable)
	assert.False(t, thread.Roots[0].Children[0].Own)
	assert.False(t, thread.Roots[1].Own)

	// Signed out: no affordances anywhere.
	anon := Annotate(testThread(), 0)
	assert.False(t, anon.Roots[0].Own)
	assert.False(t, anon.Roots[0].Editable)
}

func TestAnnotateDeletedNodes(t *testing.T) {
	thread := Annotate(testThread(), 7)

	deleted := thread.Roots[0].Children[1]
	assert.Equal(t, DeletedPlaceholder, deleted.Comment.Content)
	// Own but not editable once deleted.
	assert.True(t, deleted.Own)
	assert.False(t, deleted.Editable)
	// Replies stay attached under the placeholder.
	require.Len(t, deleted.Children, 1)
	assert.Equal(t, "orphan reply", deleted.Children[0].Comment.Content)
}

func TestVisibleCountSkipsDeleted(t *testing.T) {
	thread := Annotate(testThread(), 0)
	// 5 nodes total, one deleted.
	assert.Equal(t, 4, thread.Visible)
	assert.Equal(t, 4, CountVisible(testThread()))
}

func TestAnnotateEmpty(t *testing.T) {
	thread := Annotate(nil, 7)
	assert.Empty(t, thread.Roots)
	assert.Zero(t, thread.Visible)
}
