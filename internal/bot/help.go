package bot

const welcomeText = "👋 Welcome to your notes assistant!\n\n" +
	"This bot helps you organize your notes and projects.\n\n" +
	"You can:\n" +
	"📝 Create new notes\n" +
	"💡 Save ideas\n" +
	"📓 Keep a journal\n" +
	"📋 Organize projects\n" +
	"🔍 Refine texts with AI\n" +
	"🤖 View and edit the AI base prompt\n\n" +
	"What would you like to do?"

const helpIntroText = "❓ What do you need help with?\n\n" +
	"I can help you with:\n" +
	"• How to save and organize notes\n" +
	"• How to save ideas\n" +
	"• How to create and manage projects\n" +
	"• How to refine texts with AI\n\n" +
	"Select an option for more details:"

const unknownCommandText = "Command not recognized. Use /help to see available commands."

const deniedText = "Sorry, you don't have permission to use this bot."

// helpText returns the help screen for a topic selected from the help menu.
func helpText(topic string) string {
	switch topic {
	case "notes":
		return "📝 Notes help\n\n" +
			"Notes let you save important information for later reference.\n\n" +
			"To create a note:\n" +
			"1. Select '📝 New note' from the main menu\n" +
			"2. Write the content of your note\n" +
			"3. The note is saved automatically\n\n" +
			"To browse your notes, select '🗂 My notes' from the main menu.\n" +
			"You can also refine an existing note to improve its wording."
	case "ideas":
		return "💡 Ideas help\n\n" +
			"Ideas let you save thoughts or concepts you want to develop later.\n\n" +
			"To save an idea:\n" +
			"1. Select '💡 New idea' from the main menu\n" +
			"2. Write your idea\n" +
			"3. The idea is saved automatically\n\n" +
			"Ideas are like notes but meant for shorter, in-progress thoughts."
	case "projects":
		return "📋 Projects help\n\n" +
			"Projects are folders where you can organize notes by topic.\n\n" +
			"To create a project:\n" +
			"1. Select '📋 Projects' from the main menu\n" +
			"2. Select '➕ New project'\n" +
			"3. Write the project name\n\n" +
			"To add a note to a project, open the project and select '➕ New note'.\n" +
			"You can also ask the AI about a project; it answers based on all the project's notes."
	case "refine":
		return "🔍 Refinement help\n\n" +
			"Refinement helps you improve your texts using AI.\n\n" +
			"To refine a text:\n" +
			"1. Select '🔍 Refine text' from the main menu\n" +
			"2. Write the text you want to refine\n" +
			"3. The AI will refine it for you\n\n" +
			"The AI detects the language of the text and refines it in the same " +
			"language, keeping the original meaning but improving its presentation."
	default:
		return "❓ General help\n\n" +
			"This bot helps you organize your notes, ideas and projects.\n\n" +
			"Main commands:\n" +
			"• /start - Start the bot\n" +
			"• /menu - Show the main menu\n" +
			"• /help - Show this help"
	}
}
