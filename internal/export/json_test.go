package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"bmorg/internal/model"
)

func TestWriteJSON_TreeShape(t *testing.T) {
	added := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	root := model.BuildTree([]model.Bookmark{
		{ID: "1", URL: "https://example.com", Title: "Example", AddDate: added},
		{ID: "2", URL: "https://github.com", Title: "GitHub", FolderPath: []string{"Development"}},
	})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, root); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	var decoded TreeNode
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Name != model.RootFolder {
		t.Errorf("root name = %q, want %q", decoded.Name, model.RootFolder)
	}
	if len(decoded.Bookmarks) != 1 || decoded.Bookmarks[0].URL != "https://example.com" {
		t.Errorf("unexpected root bookmarks: %v", decoded.Bookmarks)
	}
	if len(decoded.Children) != 1 || decoded.Children[0].Name != "Development" {
		t.Fatalf("unexpected children: %v", decoded.Children)
	}
	if got := decoded.Children[0].Bookmarks[0].Title; got != "GitHub" {
		t.Errorf("nested bookmark title = %q, want GitHub", got)
	}
}

func TestWriteJSON_FieldNames(t *testing.T) {
	root := model.BuildTree([]model.Bookmark{
		{ID: "1", URL: "https://example.com", Title: "Example", FolderPath: []string{"Reading"}},
	})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, root); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	output := buf.String()

	for _, key := range []string{"\"name\"", "\"children\"", "\"bookmarks\"", "\"url\"", "\"title\""} {
		if !strings.Contains(output, key) {
			t.Errorf("Expected key %s in output", key)
		}
	}
	if !strings.HasPrefix(output, "{\n  ") {
		t.Error("Expected indented output")
	}
}

func TestWriteJSON_OmitsEmptyCollections(t *testing.T) {
	root := model.BuildTree([]model.Bookmark{
		{ID: "1", URL: "https://example.com", Title: "Example", FolderPath: []string{"Reading"}},
	})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, root); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	// Only the root has children; the leaf folder must not carry an empty
	// children array, and the root no empty bookmarks array.
	if got := strings.Count(buf.String(), "\"children\""); got != 1 {
		t.Errorf("found %d children keys, want 1", got)
	}
	if got := strings.Count(buf.String(), "\"bookmarks\""); got != 1 {
		t.Errorf("found %d bookmarks keys, want 1", got)
	}
}
