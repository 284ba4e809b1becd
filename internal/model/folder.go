package model

import (
	"sort"
	"strings"
)

// RootFolder is the display name of the folder tree root.
const RootFolder = "Bookmarks"

// FolderNode is a node in the bookmark folder tree. A node holds its own
// bookmarks plus any nested folders.
type FolderNode struct {
	Name      string
	Children  []*FolderNode
	Bookmarks []Bookmark
}

// NewRoot returns an empty tree root.
func NewRoot() *FolderNode {
	return &FolderNode{Name: RootFolder}
}

// Child returns the direct subfolder with the given name, creating it if missing.
func (n *FolderNode) Child(name string) *FolderNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &FolderNode{Name: name}
	n.Children = append(n.Children, c)
	return c
}

// Add appends a bookmark to the node.
func (n *FolderNode) Add(b Bookmark) {
	n.Bookmarks = append(n.Bookmarks, b)
}

// Walk visits the node and every descendant in depth-first order.
func (n *FolderNode) Walk(fn func(node *FolderNode, depth int)) {
	n.walk(fn, 0)
}

func (n *FolderNode) walk(fn func(*FolderNode, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// CountBookmarks returns the number of bookmarks in the subtree.
func (n *FolderNode) CountBookmarks() int {
	total := len(n.Bookmarks)
	for _, c := range n.Children {
		total += c.CountBookmarks()
	}
	return total
}

// CountFolders returns the number of folders in the subtree, excluding the
// node itself.
func (n *FolderNode) CountFolders() int {
	total := len(n.Children)
	for _, c := range n.Children {
		total += c.CountFolders()
	}
	return total
}

// SortRecursive orders the whole subtree for stable output: folders by name,
// bookmarks by title with the normalized URL as tiebreak, case-insensitive.
func (n *FolderNode) SortRecursive() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return strings.ToLower(n.Children[i].Name) < strings.ToLower(n.Children[j].Name)
	})
	sort.SliceStable(n.Bookmarks, func(i, j int) bool {
		ti := strings.ToLower(n.Bookmarks[i].Title)
		tj := strings.ToLower(n.Bookmarks[j].Title)
		if ti != tj {
			return ti < tj
		}
		return NormalizeURL(n.Bookmarks[i].URL) < NormalizeURL(n.Bookmarks[j].URL)
	})
	for _, c := range n.Children {
		c.SortRecursive()
	}
}

// BuildTree arranges flat bookmarks into a folder tree following each entry's
// FolderPath. Entries with an empty path land at the root.
func BuildTree(bookmarks []Bookmark) *FolderNode {
	root := NewRoot()
	for _, b := range bookmarks {
		node := root
		for _, name := range b.FolderPath {
			node = node.Child(name)
		}
		node.Add(b)
	}
	return root
}
