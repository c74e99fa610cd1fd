// Package commentview annotates a fetched comment tree for display: reply
// depth, per-node edit/delete affordances for the viewing user, and the
// visible comment count. The tree shape itself is backend-owned; nodes are
// never re-parented here.
package commentview

import (
	"github.com/usyj/makgora-client/internal/domain"
)

// DeletedPlaceholder replaces the body of a soft-deleted comment. The node
// stays in the tree so its replies keep their place.
const DeletedPlaceholder = "(deleted)"

// Node is one annotated comment with its annotated children.
type Node struct {
	Comment  domain.Comment `json:"comment"`
	Depth    int            `json:"depth"`
	Own      bool           `json:"own"`
	Editable bool           `json:"editable"`
	Children []Node         `json:"children,omitempty"`
}

// Thread is a fully annotated discussion tree.
type Thread struct {
	Roots []Node `json:"roots"`
	// Visible counts every non-deleted node at any depth. Deleted nodes
	// still render as placeholders but do not count.
	Visible int `json:"visibleCount"`
}

// Annotate walks the backend's tree and marks each node for the viewer.
// viewerID zero means not signed in: nothing is own or editable. Edit and
// delete are UI affordances only; the backend re-checks authorship on every
// mutation.
func Annotate(comments []domain.Comment, viewerID int64) Thread {
	t := Thread{Roots: make([]Node, 0, len(comments))}
	for _, c := range comments {
		t.Roots = append(t.Roots, annotate(c, viewerID, 0, &t.Visible))
	}
	return t
}

func annotate(c domain.Comment, viewerID int64, depth int, visible *int) Node {
	n := Node{
		Comment: c,
		Depth:   depth,
		Own:     viewerID != 0 && c.UserID == viewerID,
	}
	if c.Deleted {
		n.Comment.Content = DeletedPlaceholder
	} else {
		*visible++
		n.Editable = n.Own
	}
	if len(c.Children) > 0 {
		n.Children = make([]Node, 0, len(c.Children))
		for _, child := range c.Children {
			n.Children = append(n.Children, annotate(child, viewerID, depth+1, visible))
		}
	}
	// The annotated children replace the raw ones so encoders do not emit
	// the tree twice.
	n.Comment.Children = nil
	return n
}

// Find walks a raw tree for the comment with the given id.
func Find(comments []domain.Comment, id int64) (domain.Comment, bool) {
	for _, c := range comments {
		if c.ID == id {
			return c, true
		}
		if found, ok := Find(c.Children, id); ok {
			return found, ok
		}
	}
	return domain.Comment{}, false
}

// CountVisible returns the number of non-deleted comments in a raw tree,
// for list rows that show a count without rendering the thread.
func CountVisible(comments []domain.Comment) int {
	total := 0
	for _, c := range comments {
		if !c.Deleted {
			total++
		}
		total += CountVisible(c.Children)
	}
	return total
}
