package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/models"
)

// menuTitleLen caps record previews shown on menu buttons.
const menuTitleLen = 30

// confirmPreviewLen caps the content echo in save confirmations.
const confirmPreviewLen = 100

func preview(content string, max int) string {
	runes := []rune(content)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return content
}

func row(text, data string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(text, data))
}

func mainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("📝 New note", cbNewNote),
		row("💡 New idea", cbNewIdea),
		row("📓 Journal entry", cbNewJournal),
		row("📋 Projects", cbProjectsMenu),
		row("🗂 My notes", cbNotesMenu),
		row("🔎 Search", cbSearch),
		row("🔍 Refine text", cbRefineMessage),
		row("🤖 Base prompt", cbBasePrompt),
		row("❓ Help", cbHelp),
	)
}

func cancelMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row("❌ Cancel", cbCancel))
}

func backToMainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row("🔙 Main menu", cbMainMenu))
}

func backToNotesMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row("🔙 Back to notes", cbNotesMenu))
}

func basePromptMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("✏️ Edit prompt", cbEditBasePrompt),
		row("🔙 Main menu", cbMainMenu),
	)
}

func noteIcon(n models.Note) string {
	if n.ProjectID != "" {
		return "📋"
	}
	return "📝"
}

func notesMenu(items []models.Note) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, n := range items {
		label := fmt.Sprintf("%s %s - %s", noteIcon(n), n.ID, preview(n.Content, menuTitleLen))
		rows = append(rows, row(label, cbNotePrefix+n.ID))
	}
	rows = append(rows, row("➕ New note", cbNewNote))
	rows = append(rows, row("🔙 Main menu", cbMainMenu))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func projectsMenu(projects []models.Project) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range projects {
		rows = append(rows, row("📋 "+p.Title, cbProjectPrefix+p.ID))
	}
	rows = append(rows, row("➕ New project", cbNewProject))
	rows = append(rows, row("🔙 Main menu", cbMainMenu))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func noteButtons(noteID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("🔍 Refine", cbRefineNotePrefix+noteID),
		row("🗑 Delete", cbDeleteNotePrefix+noteID),
		row("🔙 Back to notes", cbNotesMenu),
	)
}

func projectButtonRows(projectID string) [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		row("➕ New note", cbNewProjectNotePrefix+projectID),
		row("🤖 Ask about this project", cbAskProjectPrefix+projectID),
		row("🔙 Back to projects", cbProjectsMenu),
	}
}

// projectMenu lists the project's notes followed by the project actions.
func projectMenu(projectID string, items []models.Note) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	if len(items) == 0 {
		rows = append(rows, row("This project has no notes yet", cbNoop))
	}
	for _, n := range items {
		label := fmt.Sprintf("📝 %s - %s", n.ID, preview(n.Content, menuTitleLen))
		rows = append(rows, row(label, cbNotePrefix+n.ID))
	}
	rows = append(rows, projectButtonRows(projectID)...)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func searchResultsMenu(results []index.SearchResult) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range results {
		icon := "📝"
		switch r.Kind {
		case "idea":
			icon = "💡"
		case "journal":
			icon = "📓"
		}
		label := fmt.Sprintf("%s %s - %s", icon, r.ID, preview(r.Snippet, menuTitleLen))
		if r.Kind == "note" {
			rows = append(rows, row(label, cbNotePrefix+r.ID))
		} else {
			rows = append(rows, row(label, cbNoop))
		}
	}
	rows = append(rows, row("🔎 New search", cbSearch))
	rows = append(rows, row("🔙 Main menu", cbMainMenu))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func helpMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		row("📝 Notes help", cbHelpPrefix+"notes"),
		row("💡 Ideas help", cbHelpPrefix+"ideas"),
		row("📋 Projects help", cbHelpPrefix+"projects"),
		row("🔍 Refinement help", cbHelpPrefix+"refine"),
		row("🔙 Main menu", cbMainMenu),
	)
}

func backToHelpMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(row("🔙 Back to help", cbHelp))
}

func formatNote(n models.Note) string {
	return fmt.Sprintf("%s Note #%s\n\n%s", noteIcon(n), n.ID, n.Content)
}

func formatProject(p models.Project, items []models.Note) string {
	msg := fmt.Sprintf("📋 Project: %s\n\n", p.Title)
	if len(items) > 0 {
		msg += "Project notes:\n\n"
		for _, n := range items {
			msg += fmt.Sprintf("• %s - %s\n", n.ID, preview(n.Content, menuTitleLen))
		}
	}
	return msg
}
