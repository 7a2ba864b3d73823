package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want Language
	}{
		{"the quick fox is here", English},
		{"el perro está aquí", Spanish},
		{"zzz qqq", Spanish},          // no recognized words defaults to Spanish
		{"", Spanish},                 // empty input defaults to Spanish
		{"the es", Spanish},           // ties go to Spanish
		{"what is the point", English},
		{"qué es la vida", Spanish},
		{"THE Quick Fox IS Here", English}, // case-insensitive
	}
	for _, tt := range tests {
		if got := Detect(tt.text); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDirective(t *testing.T) {
	if got := Directive(English); got != "Respond in English only, without translations." {
		t.Errorf("English directive = %q", got)
	}
	if got := Directive(Spanish); got != "Responde en español únicamente, sin traducciones." {
		t.Errorf("Spanish directive = %q", got)
	}
}

func TestApology(t *testing.T) {
	if got := Apology(English); got != "Sorry, I had a problem processing your message. Could you try again?" {
		t.Errorf("English apology = %q", got)
	}
	if got := Apology(Spanish); got != "Lo siento, tuve un problema al procesar tu mensaje. ¿Podrías intentarlo de nuevo?" {
		t.Errorf("Spanish apology = %q", got)
	}
}
