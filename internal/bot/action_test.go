package bot

import (
	"errors"
	"testing"

	"github.com/jsoler/apunte/internal/apperr"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		data string
		kind ActionKind
		id   string
	}{
		{"menu_main", ActionMainMenu, ""},
		{"menu_notes", ActionNotesMenu, ""},
		{"menu_projects", ActionProjectsMenu, ""},
		{"menu_journal", ActionJournalMenu, ""},
		{"new_note", ActionNewNote, ""},
		{"new_idea", ActionNewIdea, ""},
		{"new_journal", ActionNewJournal, ""},
		{"new_project", ActionNewProject, ""},
		{"base_prompt", ActionBasePrompt, ""},
		{"edit_base_prompt", ActionEditBasePrompt, ""},
		{"refine_message", ActionRefineMessage, ""},
		{"search_notes", ActionSearch, ""},
		{"help", ActionHelp, ""},
		{"cancel", ActionCancel, ""},
		{"dummy", ActionNoop, ""},
		{"note_ab12cd34", ActionShowNote, "ab12cd34"},
		{"project_ab12cd34", ActionShowProject, "ab12cd34"},
		{"new_project_note_ab12cd34", ActionNewProjectNote, "ab12cd34"},
		{"refine_note_ab12cd34", ActionRefineNote, "ab12cd34"},
		{"confirm_refine_ab12cd34", ActionConfirmRefine, "ab12cd34"},
		{"delete_note_ab12cd34", ActionDeleteNote, "ab12cd34"},
		{"ask_project_ab12cd34", ActionAskProject, "ab12cd34"},
		{"chat_project_ab12cd34", ActionAskProject, "ab12cd34"}, // legacy payload
		{"help_notes", ActionHelpTopic, "notes"},
	}
	for _, tt := range tests {
		act, err := ParseAction(tt.data)
		if err != nil {
			t.Errorf("ParseAction(%q): %v", tt.data, err)
			continue
		}
		if act.Kind != tt.kind || act.ID != tt.id {
			t.Errorf("ParseAction(%q) = %+v, want kind=%v id=%q", tt.data, act, tt.kind, tt.id)
		}
	}
}

func TestParseAction_Unknown(t *testing.T) {
	for _, data := range []string{"", "bogus", "note_", "project_", "notes_extra", "new_project_note_"} {
		if _, err := ParseAction(data); !errors.Is(err, apperr.ErrUnknownAction) {
			t.Errorf("ParseAction(%q) err = %v, want ErrUnknownAction", data, err)
		}
	}
}
