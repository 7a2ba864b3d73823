package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jsoler/apunte/internal/notes"
	"github.com/jsoler/apunte/internal/store"
	"github.com/jsoler/apunte/internal/testutil"
)

func testServer(t *testing.T) (*Server, *notes.Manager) {
	t.Helper()

	p, err := store.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := notes.NewManager(p)
	db := testutil.TestDB(t)
	return New(m, db), m
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper; call the handlers.
	var result *mcp.CallToolResult
	var err error
	switch name {
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "create_idea":
		result, err = srv.createIdea(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "list_recent_notes":
		result, err = srv.listRecentNotes(ctx, req)
	case "list_projects":
		result, err = srv.listProjects(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateNote(t *testing.T) {
	srv, m := testServer(t)

	result := callTool(t, srv, "create_note", map[string]interface{}{
		"content": "written over mcp",
	})
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(result))
	}
	items := m.Notes()
	if len(items) != 1 || items[0].Content != "written over mcp" {
		t.Errorf("notes = %+v", items)
	}
	if !strings.Contains(resultText(result), items[0].ID) {
		t.Error("result should carry the note id")
	}
}

func TestCreateNote_MissingContent(t *testing.T) {
	srv, _ := testServer(t)

	result := callTool(t, srv, "create_note", map[string]interface{}{})
	if !result.IsError {
		t.Fatal("expected error for missing content")
	}
}

func TestCreateNote_UnknownProject(t *testing.T) {
	srv, m := testServer(t)

	result := callTool(t, srv, "create_note", map[string]interface{}{
		"content":    "orphan",
		"project_id": "missing1",
	})
	if !result.IsError {
		t.Fatal("expected error for unknown project")
	}
	if len(m.Notes()) != 0 {
		t.Error("no note should be created")
	}
}

func TestCreateNote_InProject(t *testing.T) {
	srv, m := testServer(t)

	project, err := m.CreateProject("Forge")
	if err != nil {
		t.Fatal(err)
	}
	result := callTool(t, srv, "create_note", map[string]interface{}{
		"content":    "quench the blade",
		"project_id": project.ID,
	})
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(result))
	}
	if scoped := m.NotesByProject(project.ID); len(scoped) != 1 {
		t.Errorf("project notes = %+v", scoped)
	}
}

func TestCreateIdea(t *testing.T) {
	srv, m := testServer(t)

	result := callTool(t, srv, "create_idea", map[string]interface{}{
		"content": "wind chimes",
	})
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(result))
	}
	if len(m.Ideas()) != 1 {
		t.Errorf("ideas = %+v", m.Ideas())
	}
}

func TestReadNote(t *testing.T) {
	srv, m := testServer(t)

	note, _ := m.CreateNote("readable", "")
	result := callTool(t, srv, "read_note", map[string]interface{}{"id": note.ID})
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(result))
	}
	if !strings.Contains(resultText(result), "readable") {
		t.Errorf("result = %s", resultText(result))
	}

	result = callTool(t, srv, "read_note", map[string]interface{}{"id": "missing1"})
	if !result.IsError {
		t.Fatal("expected error for missing note")
	}
}

func TestListRecentNotes(t *testing.T) {
	srv, m := testServer(t)

	for i := 0; i < 3; i++ {
		if _, err := m.CreateNote("n", ""); err != nil {
			t.Fatal(err)
		}
	}
	result := callTool(t, srv, "list_recent_notes", map[string]interface{}{"limit": 2})
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(result))
	}
	if got := strings.Count(resultText(result), `"content"`); got != 2 {
		t.Errorf("listed %d notes, want 2", got)
	}
}

func TestListProjects(t *testing.T) {
	srv, m := testServer(t)

	if _, err := m.CreateProject("Attic"); err != nil {
		t.Fatal(err)
	}
	result := callTool(t, srv, "list_projects", map[string]interface{}{})
	if !strings.Contains(resultText(result), "Attic") {
		t.Errorf("result = %s", resultText(result))
	}
}

func TestSearchNotes(t *testing.T) {
	srv, _ := testServer(t)

	// Notes created through the server are indexed as they are written.
	callTool(t, srv, "create_note", map[string]interface{}{
		"content": "the copper kettle whistles",
	})

	result := callTool(t, srv, "search_notes", map[string]interface{}{"query": "kettle"})
	if result.IsError {
		t.Fatalf("tool error: %s", resultText(result))
	}
	if !strings.Contains(resultText(result), "note") {
		t.Errorf("result = %s", resultText(result))
	}
}

func TestSearchNotes_WithoutIndex(t *testing.T) {
	p, err := store.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := New(notes.NewManager(p), nil)

	result := callTool(t, srv, "search_notes", map[string]interface{}{"query": "x"})
	if !result.IsError {
		t.Fatal("expected error without index")
	}
}
