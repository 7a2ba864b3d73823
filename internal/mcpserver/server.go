// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the note tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/notes"
)

// Server wraps the MCP server with the note tools.
type Server struct {
	mcp     *server.MCPServer
	manager *notes.Manager
	idx     index.Index
}

// New creates a new MCP server with all tools registered. idx may be nil
// when no search index is open; search_notes then reports unavailability.
func New(manager *notes.Manager, idx index.Index) *Server {
	s := &Server{manager: manager, idx: idx}

	s.mcp = server.NewMCPServer(
		"Apunte",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note, optionally scoped to a project."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note content")),
		mcp.WithString("project_id", mcp.Description("Optional project id the note belongs to")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("create_idea",
		mcp.WithDescription("Save a new idea. Ideas are never project-scoped."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Idea content")),
	), s.createIdea)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("list_recent_notes",
		mcp.WithDescription("List the most recent notes, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of notes to return")),
	), s.listRecentNotes)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search across notes, ideas and journal entries."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) createNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	projectID := req.GetString("project_id", "")
	if projectID != "" {
		if _, err := s.manager.GetProject(projectID); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("project not found: %s", projectID)), nil
		}
	}
	note, err := s.manager.CreateNote(content, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.idx != nil {
		_ = s.idx.Upsert(index.Record{ID: note.ID, Kind: "note", ProjectID: note.ProjectID, Content: note.Content, Created: note.Created})
	}
	out, _ := json.MarshalIndent(note, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createIdea(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	idea, err := s.manager.CreateIdea(content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.idx != nil {
		_ = s.idx.Upsert(index.Record{ID: idea.ID, Kind: "idea", Content: idea.Content, Created: idea.Created})
	}
	out, _ := json.MarshalIndent(idea, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.manager.GetNote(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(note, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRecentNotes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", notes.DefaultRecentLimit)
	items := s.manager.RecentNotes(limit)
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listProjects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := s.manager.Projects()
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchNotes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.idx == nil {
		return mcp.NewToolResultError("search index unavailable"), nil
	}
	results, err := s.idx.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
