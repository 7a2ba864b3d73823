package bot

import (
	"fmt"
	"strings"

	"github.com/jsoler/apunte/internal/apperr"
)

// Callback payloads. Item payloads embed the record id after the prefix.
const (
	cbMainMenu       = "menu_main"
	cbNotesMenu      = "menu_notes"
	cbProjectsMenu   = "menu_projects"
	cbJournalMenu    = "menu_journal"
	cbNewNote        = "new_note"
	cbNewIdea        = "new_idea"
	cbNewJournal     = "new_journal"
	cbNewProject     = "new_project"
	cbBasePrompt     = "base_prompt"
	cbEditBasePrompt = "edit_base_prompt"
	cbRefineMessage  = "refine_message"
	cbSearch         = "search_notes"
	cbHelp           = "help"
	cbCancel         = "cancel"
	cbNoop           = "dummy"

	cbNotePrefix           = "note_"
	cbProjectPrefix        = "project_"
	cbNewProjectNotePrefix = "new_project_note_"
	cbRefineNotePrefix     = "refine_note_"
	cbConfirmRefinePrefix  = "confirm_refine_"
	cbAskProjectPrefix     = "ask_project_"
	cbChatProjectPrefix    = "chat_project_"
	cbDeleteNotePrefix     = "delete_note_"
	cbHelpPrefix           = "help_"
)

// ActionKind enumerates every recognized callback action.
type ActionKind int

const (
	ActionMainMenu ActionKind = iota
	ActionNotesMenu
	ActionProjectsMenu
	ActionJournalMenu
	ActionNewNote
	ActionNewIdea
	ActionNewJournal
	ActionNewProject
	ActionBasePrompt
	ActionEditBasePrompt
	ActionRefineMessage
	ActionSearch
	ActionHelp
	ActionHelpTopic
	ActionCancel
	ActionNoop
	ActionShowNote
	ActionShowProject
	ActionNewProjectNote
	ActionRefineNote
	ActionConfirmRefine
	ActionAskProject
	ActionDeleteNote
)

// Action is a callback payload resolved once at the transport boundary.
// ID carries the embedded record id (or help topic) when the kind has one.
type Action struct {
	Kind ActionKind
	ID   string
}

// ParseAction resolves a raw callback payload into a closed tagged Action.
// Unrecognized payloads yield apperr.ErrUnknownAction.
func ParseAction(data string) (Action, error) {
	switch data {
	case cbMainMenu:
		return Action{Kind: ActionMainMenu}, nil
	case cbNotesMenu:
		return Action{Kind: ActionNotesMenu}, nil
	case cbProjectsMenu:
		return Action{Kind: ActionProjectsMenu}, nil
	case cbJournalMenu:
		return Action{Kind: ActionJournalMenu}, nil
	case cbNewNote:
		return Action{Kind: ActionNewNote}, nil
	case cbNewIdea:
		return Action{Kind: ActionNewIdea}, nil
	case cbNewJournal:
		return Action{Kind: ActionNewJournal}, nil
	case cbNewProject:
		return Action{Kind: ActionNewProject}, nil
	case cbBasePrompt:
		return Action{Kind: ActionBasePrompt}, nil
	case cbEditBasePrompt:
		return Action{Kind: ActionEditBasePrompt}, nil
	case cbRefineMessage:
		return Action{Kind: ActionRefineMessage}, nil
	case cbSearch:
		return Action{Kind: ActionSearch}, nil
	case cbHelp:
		return Action{Kind: ActionHelp}, nil
	case cbCancel:
		return Action{Kind: ActionCancel}, nil
	case cbNoop:
		return Action{Kind: ActionNoop}, nil
	}

	// Prefixed payloads. Longer prefixes first: "new_project_note_" would
	// otherwise never match after "note_"-style checks elsewhere.
	for _, p := range []struct {
		prefix string
		kind   ActionKind
	}{
		{cbNewProjectNotePrefix, ActionNewProjectNote},
		{cbConfirmRefinePrefix, ActionConfirmRefine},
		{cbRefineNotePrefix, ActionRefineNote},
		{cbDeleteNotePrefix, ActionDeleteNote},
		{cbAskProjectPrefix, ActionAskProject},
		{cbChatProjectPrefix, ActionAskProject}, // legacy alias
		{cbProjectPrefix, ActionShowProject},
		{cbNotePrefix, ActionShowNote},
		{cbHelpPrefix, ActionHelpTopic},
	} {
		if id, ok := strings.CutPrefix(data, p.prefix); ok && id != "" {
			return Action{Kind: p.kind, ID: id}, nil
		}
	}

	return Action{}, fmt.Errorf("%w: %q", apperr.ErrUnknownAction, data)
}
