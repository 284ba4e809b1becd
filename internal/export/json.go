package export

import (
	"encoding/json"
	"fmt"
	"io"

	"bmorg/internal/model"
)

// TreeNode is the JSON shape of one folder: its name, subfolders and entries.
type TreeNode struct {
	Name      string           `json:"name"`
	Children  []TreeNode       `json:"children,omitempty"`
	Bookmarks []model.Bookmark `json:"bookmarks,omitempty"`
}

// toTreeNode converts the in-memory tree to its JSON shape.
func toTreeNode(node *model.FolderNode) TreeNode {
	out := TreeNode{
		Name:      node.Name,
		Bookmarks: node.Bookmarks,
	}
	for _, c := range node.Children {
		out.Children = append(out.Children, toTreeNode(c))
	}
	return out
}

// WriteJSON renders the tree as an indented JSON document rooted at a single
// folder object.
func WriteJSON(w io.Writer, root *model.FolderNode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(toTreeNode(root)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
