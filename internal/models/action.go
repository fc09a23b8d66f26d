package models

import "strings"

// Action is the closed set of command interpretations the dispatcher knows
// how to execute. Anything outside this set is reported as unhandled, never
// silently coerced into a conversation.
type Action string

const (
	ActionOpenApp       Action = "OPEN_APP"
	ActionOpenFolder    Action = "OPEN_FOLDER"
	ActionSearchWeb     Action = "SEARCH_WEB"
	ActionSearchYoutube Action = "SEARCH_YOUTUBE"
	ActionPlayYoutube   Action = "PLAY_YOUTUBE"
	ActionOpenWebsite   Action = "OPEN_WEBSITE"
	ActionScreenClick   Action = "SCREEN_CLICK"
	ActionScreenAnalyze Action = "SCREEN_ANALYZE"
	ActionTypeText      Action = "TYPE_TEXT"
	ActionPressKey      Action = "PRESS_KEY"
	ActionScroll        Action = "SCROLL"
	ActionSearchFiles   Action = "SEARCH_FILES"
	ActionOpenFile      Action = "OPEN_FILE"
	ActionConversation  Action = "CONVERSATION"
	ActionSystemCommand Action = "SYSTEM_COMMAND"
)

// AllActions lists every valid action tag in taxonomy order.
var AllActions = []Action{
	ActionOpenApp,
	ActionOpenFolder,
	ActionSearchWeb,
	ActionSearchYoutube,
	ActionPlayYoutube,
	ActionOpenWebsite,
	ActionScreenClick,
	ActionScreenAnalyze,
	ActionTypeText,
	ActionPressKey,
	ActionScroll,
	ActionSearchFiles,
	ActionOpenFile,
	ActionConversation,
	ActionSystemCommand,
}

// Valid reports whether a is a member of the closed action set.
func (a Action) Valid() bool {
	for _, known := range AllActions {
		if a == known {
			return true
		}
	}
	return false
}

// Slug returns the lower-case form used in action results and audit rows.
func (a Action) Slug() string {
	return strings.ToLower(string(a))
}
