// Package bot implements the conversational state machine: it tracks one
// pending action per user and interprets menu callbacks and free-text
// messages against it, dispatching to the entity managers, prompt provider
// and language-model gateway.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jsoler/apunte/internal/apperr"
	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/lang"
	"github.com/jsoler/apunte/internal/notes"
	"github.com/jsoler/apunte/internal/prompt"
)

// refineInstruction is the fixed directive sent with every note refinement.
const refineInstruction = "Refine the following text to make it clearer and more concise, " +
	"keeping its main meaning. If it is in Spanish, refine it in Spanish. " +
	"If it is in English, refine it in English."

// Generator produces model output for a composed user message.
type Generator interface {
	Generate(ctx context.Context, message, extraContext string) (string, error)
}

// Reply is a transport-neutral outbound message. Edit marks replies that
// should replace the menu message that triggered them.
type Reply struct {
	Text   string
	Markup *tgbotapi.InlineKeyboardMarkup
	Edit   bool
}

func reply(text string, markup tgbotapi.InlineKeyboardMarkup) Reply {
	return Reply{Text: text, Markup: &markup}
}

func edit(text string, markup tgbotapi.InlineKeyboardMarkup) Reply {
	return Reply{Text: text, Markup: &markup, Edit: true}
}

// Router dispatches inbound events against per-user conversational state.
type Router struct {
	authorized int64
	sessions   *Sessions
	manager    *notes.Manager
	prompts    *prompt.Provider
	gen        Generator
	idx        index.Index
	logger     *slog.Logger
}

// NewRouter creates a Router. idx may be nil when no search index is open.
func NewRouter(authorized int64, sessions *Sessions, manager *notes.Manager,
	prompts *prompt.Provider, gen Generator, idx index.Index, logger *slog.Logger) *Router {
	return &Router{
		authorized: authorized,
		sessions:   sessions,
		manager:    manager,
		prompts:    prompts,
		gen:        gen,
		idx:        idx,
		logger:     logger,
	}
}

// generateOrApology runs the gateway call and degrades failures to the
// localized apology, leaving the caller's state untouched.
func (r *Router) generateOrApology(ctx context.Context, message, extra string) string {
	text, err := r.gen.Generate(ctx, message, extra)
	if err != nil {
		r.logger.Error("router: generation failed", slog.String("error", err.Error()))
		return lang.Apology(lang.Detect(message))
	}
	return text
}

func (r *Router) upsertIndex(rec index.Record) {
	if r.idx == nil {
		return
	}
	if err := r.idx.Upsert(rec); err != nil {
		r.logger.Warn("router: index upsert failed", slog.String("id", rec.ID), slog.String("error", err.Error()))
	}
}

func (r *Router) deleteFromIndex(id string) {
	if r.idx == nil {
		return
	}
	if err := r.idx.Delete(id); err != nil {
		r.logger.Warn("router: index delete failed", slog.String("id", id), slog.String("error", err.Error()))
	}
}

// HandleCommand processes a slash command (without the leading slash).
func (r *Router) HandleCommand(_ context.Context, userID int64, command string) Reply {
	if userID != r.authorized {
		return Reply{Text: deniedText}
	}

	switch command {
	case "start":
		return reply(welcomeText, mainMenu())
	case "menu":
		return reply("Select an option:", mainMenu())
	case "help":
		return reply(helpIntroText, helpMenu())
	default:
		return Reply{Text: unknownCommandText}
	}
}

// HandleCallback processes a menu-button callback payload.
func (r *Router) HandleCallback(ctx context.Context, userID int64, data string) Reply {
	if userID != r.authorized {
		return Reply{Text: deniedText}
	}

	act, err := ParseAction(data)
	if err != nil {
		r.logger.Warn("router: unrecognized callback", slog.String("data", data))
		return edit("❌ Unknown action.", mainMenu())
	}

	switch act.Kind {
	case ActionMainMenu:
		r.sessions.Reset(userID)
		return edit("Welcome to your notes assistant! What would you like to do?", mainMenu())

	case ActionNotesMenu:
		items := r.manager.RecentNotes(notes.DefaultRecentLimit)
		return edit("🗂 Recent notes\n\nSelect a note to view its content or create a new one:", notesMenu(items))

	case ActionProjectsMenu:
		return edit("📋 Projects\n\nSelect a project to view its notes or create a new one:",
			projectsMenu(r.manager.Projects()))

	case ActionJournalMenu:
		entries := r.manager.RecentJournal(notes.DefaultRecentLimit)
		msg := "📓 Recent journal entries\n\n"
		if len(entries) == 0 {
			msg += "No entries yet."
		}
		for _, e := range entries {
			msg += fmt.Sprintf("• %s (%s)\n  %s\n", e.ID, e.Created.Format("2006-01-02"), preview(e.Content, menuTitleLen))
		}
		return edit(msg, backToMainMenu())

	case ActionNewNote:
		r.sessions.Set(userID, Session{Pending: AwaitingNote})
		return edit("📝 New note\n\nPlease write the content of your note:", cancelMenu())

	case ActionNewIdea:
		r.sessions.Set(userID, Session{Pending: AwaitingIdea})
		return edit("💡 New idea\n\nPlease write your idea:", cancelMenu())

	case ActionNewJournal:
		r.sessions.Set(userID, Session{Pending: AwaitingJournal})
		return edit("📓 Journal entry\n\nPlease write today's entry:", cancelMenu())

	case ActionNewProject:
		r.sessions.Set(userID, Session{Pending: AwaitingProjectName})
		return edit("📋 New project\n\nPlease write the project name:", cancelMenu())

	case ActionBasePrompt:
		base := r.prompts.Prompt()
		msg := "🤖 Current base prompt\n\n" + base.Content + "\n\nYou can edit this prompt with 'Edit prompt'."
		return edit(msg, basePromptMenu())

	case ActionEditBasePrompt:
		r.sessions.Set(userID, Session{Pending: AwaitingBasePrompt})
		return edit("✏️ Edit base prompt\n\nPlease send the new base prompt for the AI.\n\n"+
			"It will be used as the starting instruction for every AI interaction.", cancelMenu())

	case ActionRefineMessage:
		r.sessions.Set(userID, Session{Pending: AwaitingRefinement})
		return edit("🔍 Let's refine your text.\n\nPlease send the content you want to refine. "+
			"I'll use AI to improve it while keeping its main meaning.", cancelMenu())

	case ActionSearch:
		r.sessions.Set(userID, Session{Pending: AwaitingSearch})
		return edit("🔎 Search\n\nSend the text to search for across your notes, ideas and journal:", cancelMenu())

	case ActionHelp:
		return edit(helpIntroText, helpMenu())

	case ActionHelpTopic:
		return edit(helpText(act.ID), backToHelpMenu())

	case ActionCancel:
		r.sessions.Reset(userID)
		return edit("❌ Operation cancelled.\n\nWhat would you like to do?", mainMenu())

	case ActionNoop:
		return Reply{}

	case ActionShowNote:
		note, err := r.manager.GetNote(act.ID)
		if err != nil {
			return edit("❌ Note not found.", backToNotesMenu())
		}
		return edit(formatNote(note), noteButtons(note.ID))

	case ActionShowProject:
		// Leaving project chat: back on the project menu means idle again.
		r.sessions.Reset(userID)
		project, err := r.manager.GetProject(act.ID)
		if err != nil {
			return edit("❌ Project not found.", projectsMenu(r.manager.Projects()))
		}
		items := r.manager.NotesByProject(project.ID)
		return edit(formatProject(project, items), projectMenu(project.ID, items))

	case ActionNewProjectNote:
		project, err := r.manager.GetProject(act.ID)
		if err != nil {
			return edit("❌ Project not found.", projectsMenu(r.manager.Projects()))
		}
		r.sessions.Set(userID, Session{Pending: AwaitingProjectNote, ProjectID: project.ID})
		markup := tgbotapi.NewInlineKeyboardMarkup(row("🔙 Cancel", cbProjectPrefix+project.ID))
		return edit(fmt.Sprintf("📝 Let's add a note to the project '%s'.\n\n"+
			"Please send the content of your note. It will be saved in the selected project.",
			project.Title), markup)

	case ActionRefineNote:
		note, err := r.manager.GetNote(act.ID)
		if err != nil {
			return edit("❌ Note not found.", backToNotesMenu())
		}
		r.sessions.Set(userID, Session{Pending: AwaitingRefinement, NoteID: note.ID})
		markup := tgbotapi.NewInlineKeyboardMarkup(
			row("✅ Refine", cbConfirmRefinePrefix+note.ID),
			row("🔙 Cancel", cbNotePrefix+note.ID),
		)
		return edit(fmt.Sprintf("🔍 Let's refine this note:\n\n%s\n\nDo you want to proceed?", note.Content), markup)

	case ActionConfirmRefine:
		return r.refineStoredNote(ctx, userID, act.ID)

	case ActionAskProject:
		return r.enterProjectChat(userID, act.ID)

	case ActionDeleteNote:
		note, err := r.manager.GetNote(act.ID)
		if err != nil {
			return edit("❌ Note not found.", backToNotesMenu())
		}
		if err := r.manager.DeleteNote(note.ID); err != nil {
			r.logger.Error("router: delete failed", slog.String("id", note.ID), slog.String("error", err.Error()))
			return edit("⚠️ The note could not be deleted.", backToNotesMenu())
		}
		r.deleteFromIndex(note.ID)
		return edit("🗑 Note deleted.", notesMenu(r.manager.RecentNotes(notes.DefaultRecentLimit)))
	}

	return edit("❌ Unknown action.", mainMenu())
}

// refineStoredNote fetches a note, runs the refinement through the gateway
// and persists the result with an immutable before/after snapshot. This is
// the direct entry path from a note's detail screen; it does not depend on
// prior state.
func (r *Router) refineStoredNote(ctx context.Context, userID int64, noteID string) Reply {
	note, err := r.manager.GetNote(noteID)
	if err != nil {
		return edit("❌ Note not found.", backToNotesMenu())
	}

	refined, err := r.gen.Generate(ctx, note.Content, refineInstruction)
	if err != nil {
		// State is left unchanged so the user can retry the same input.
		r.logger.Error("router: refinement failed", slog.String("id", noteID), slog.String("error", err.Error()))
		return edit(lang.Apology(lang.Detect(note.Content)), backToNotesMenu())
	}

	if err := r.manager.UpdateNote(note.ID, refined); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return edit("❌ Note not found.", backToNotesMenu())
		}
		r.logger.Error("router: save refinement failed", slog.String("id", noteID), slog.String("error", err.Error()))
		return edit("⚠️ The refined note could not be saved.", backToNotesMenu())
	}
	r.upsertIndex(index.Record{ID: note.ID, Kind: "note", ProjectID: note.ProjectID, Content: refined, Created: note.Created})
	r.sessions.Reset(userID)

	return edit(fmt.Sprintf("✅ Note refined successfully!\n\nOriginal text:\n%s\n\nRefined text:\n%s",
		note.Content, refined), backToNotesMenu())
}

// enterProjectChat accumulates the project's notes as background context
// and switches the user into project chat mode.
func (r *Router) enterProjectChat(userID int64, projectID string) Reply {
	project, err := r.manager.GetProject(projectID)
	if err != nil {
		return edit("❌ Project not found.", projectsMenu(r.manager.Projects()))
	}
	items := r.manager.NotesByProject(project.ID)
	if len(items) == 0 {
		return edit(fmt.Sprintf("🤖 The project '%s' has no notes yet.\n\n"+
			"Add some notes before asking questions about the project.", project.Title),
			tgbotapi.NewInlineKeyboardMarkup(projectButtonRows(project.ID)...))
	}

	background := fmt.Sprintf("I'm working on a project called '%s'. Here are the project notes:\n\n", project.Title)
	for _, n := range items {
		background += fmt.Sprintf("Note #%s:\n%s\n\n", n.ID, n.Content)
	}
	background += "I'm ready to answer questions about this project based on these notes."

	r.sessions.Set(userID, Session{Pending: ProjectChat, ProjectID: project.ID, Context: background})

	markup := tgbotapi.NewInlineKeyboardMarkup(row("🔙 Back to projects", cbProjectPrefix+project.ID))
	return edit(fmt.Sprintf("🤖 I'm ready to answer questions about the project '%s'.\n\n"+
		"This project has %d notes. Ask me anything about their content.\n\n"+
		"To leave this mode, select '🔙 Back to projects'.", project.Title, len(items)), markup)
}

// HandleMessage processes a free-text message according to the user's
// pending state.
func (r *Router) HandleMessage(ctx context.Context, userID int64, text string) Reply {
	if userID != r.authorized {
		return Reply{Text: deniedText}
	}

	s := r.sessions.Get(userID)

	switch s.Pending {
	case AwaitingNote:
		note, err := r.manager.CreateNote(text, "")
		if err != nil {
			r.sessions.Reset(userID)
			return reply("⚠️ Your note could not be saved. Please try again.", mainMenu())
		}
		r.upsertIndex(index.Record{ID: note.ID, Kind: "note", Content: note.Content, Created: note.Created})
		r.sessions.Reset(userID)
		return reply(fmt.Sprintf("✅ Note saved with ID: %s\n\nContent:\n%s",
			note.ID, preview(note.Content, confirmPreviewLen)), mainMenu())

	case AwaitingIdea:
		idea, err := r.manager.CreateIdea(text)
		if err != nil {
			r.sessions.Reset(userID)
			return reply("⚠️ Your idea could not be saved. Please try again.", mainMenu())
		}
		r.upsertIndex(index.Record{ID: idea.ID, Kind: "idea", Content: idea.Content, Created: idea.Created})
		r.sessions.Reset(userID)
		return reply(fmt.Sprintf("✅ Idea saved with ID: %s\n\nContent:\n%s",
			idea.ID, preview(idea.Content, confirmPreviewLen)), mainMenu())

	case AwaitingJournal:
		entry, err := r.manager.CreateJournalEntry(text)
		if err != nil {
			r.sessions.Reset(userID)
			return reply("⚠️ Your journal entry could not be saved. Please try again.", mainMenu())
		}
		r.upsertIndex(index.Record{ID: entry.ID, Kind: "journal", Content: entry.Content, Created: entry.Created})
		r.sessions.Reset(userID)
		return reply(fmt.Sprintf("📓 Journal entry saved with ID: %s\n\nContent:\n%s",
			entry.ID, preview(entry.Content, confirmPreviewLen)), mainMenu())

	case AwaitingProjectName:
		project, err := r.manager.CreateProject(text)
		if err != nil {
			r.sessions.Reset(userID)
			return reply("⚠️ The project could not be created. Please try again.", mainMenu())
		}
		r.sessions.Reset(userID)
		return reply(fmt.Sprintf("✅ Project '%s' created successfully.", project.Title),
			projectsMenu(r.manager.Projects()))

	case AwaitingProjectNote:
		note, err := r.manager.CreateNote(text, s.ProjectID)
		if err != nil {
			r.sessions.Reset(userID)
			return reply("⚠️ Your note could not be saved. Please try again.", mainMenu())
		}
		r.upsertIndex(index.Record{ID: note.ID, Kind: "note", ProjectID: note.ProjectID, Content: note.Content, Created: note.Created})
		r.sessions.Reset(userID)
		return reply(fmt.Sprintf("✅ Note saved in the project with ID: %s\n\nContent:\n%s",
			note.ID, preview(note.Content, confirmPreviewLen)),
			tgbotapi.NewInlineKeyboardMarkup(projectButtonRows(s.ProjectID)...))

	case AwaitingBasePrompt:
		if err := r.prompts.UpdateBasePrompt(text); err != nil {
			r.logger.Error("router: base prompt update failed", slog.String("error", err.Error()))
			return reply("⚠️ The base prompt could not be updated.", mainMenu())
		}
		r.sessions.Reset(userID)
		return reply("✅ Base prompt updated.", mainMenu())

	case AwaitingSearch:
		return r.searchRecords(userID, text)

	case AwaitingRefinement:
		if s.NoteID != "" {
			return r.refineStoredNote(ctx, userID, s.NoteID).asMessage()
		}
		refined, err := r.gen.Generate(ctx, text, refineInstruction)
		if err != nil {
			// State unchanged; the user may send the text again.
			r.logger.Error("router: refinement failed", slog.String("error", err.Error()))
			return Reply{Text: lang.Apology(lang.Detect(text))}
		}
		r.sessions.Reset(userID)
		return reply("🔍 Refined text:\n\n"+refined, mainMenu())

	case ProjectChat:
		// State does not advance; the user stays in project chat until
		// they return to the project menu.
		return Reply{Text: r.generateOrApology(ctx, text, s.Context)}

	default: // Idle
		return Reply{Text: r.generateOrApology(ctx, text, "")}
	}
}

// searchRecords runs a full-text query and renders the results menu.
func (r *Router) searchRecords(userID int64, query string) Reply {
	r.sessions.Reset(userID)
	if r.idx == nil {
		return reply("🔎 Search is not available right now.", mainMenu())
	}
	results, err := r.idx.Search(query, 10)
	if err != nil {
		r.logger.Error("router: search failed", slog.String("query", query), slog.String("error", err.Error()))
		return reply("⚠️ Search failed. Please try again.", mainMenu())
	}
	if len(results) == 0 {
		return reply(fmt.Sprintf("🔎 No results for '%s'.", query), mainMenu())
	}
	return reply(fmt.Sprintf("🔎 Results for '%s':", query), searchResultsMenu(results))
}

// asMessage downgrades an edit-reply into a plain message reply, for flows
// shared between callbacks and free-text messages.
func (rp Reply) asMessage() Reply {
	rp.Edit = false
	return rp
}
