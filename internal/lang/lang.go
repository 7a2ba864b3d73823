// Package lang implements the English/Spanish heuristic used to localize
// model directives and error replies.
package lang

import "strings"

// Language is the detected message language.
type Language int

const (
	Spanish Language = iota
	English
)

var englishWords = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"have": {}, "has": {}, "had": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "what": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"who": {}, "which": {},
}

var spanishWords = map[string]struct{}{
	"el": {}, "la": {}, "los": {}, "las": {}, "es": {}, "son": {},
	"está": {}, "están": {}, "tiene": {}, "tienen": {}, "este": {},
	"esta": {}, "estos": {}, "estas": {}, "qué": {}, "cuándo": {},
	"dónde": {}, "cómo": {}, "quién": {},
}

// Detect classifies text by counting known function words in the
// lower-cased, whitespace-tokenized input. English wins on strict
// majority; ties (including zero matches) default to Spanish.
func Detect(text string) Language {
	english, spanish := 0, 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := englishWords[word]; ok {
			english++
		}
		if _, ok := spanishWords[word]; ok {
			spanish++
		}
	}
	if english > spanish {
		return English
	}
	return Spanish
}

// Directive returns the explicit language instruction appended to the
// composed prompt.
func Directive(l Language) string {
	if l == English {
		return "Respond in English only, without translations."
	}
	return "Responde en español únicamente, sin traducciones."
}

// Apology returns the localized failure reply shown when the model call
// fails.
func Apology(l Language) string {
	if l == English {
		return "Sorry, I had a problem processing your message. Could you try again?"
	}
	return "Lo siento, tuve un problema al procesar tu mensaje. ¿Podrías intentarlo de nuevo?"
}
