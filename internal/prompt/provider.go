// Package prompt manages the persisted base instruction and context blob
// that are composed into every language-model request.
package prompt

import (
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/jsoler/apunte/internal/models"
	"github.com/jsoler/apunte/internal/store"
)

// Dir is the subdirectory holding the prompt singletons.
const Dir = "prompts"

var (
	basePromptDoc = path.Join(Dir, "base_prompt.json")
	contextDoc    = path.Join(Dir, "context.json")
)

const defaultBasePrompt = `You are an intelligent and friendly personal assistant. Your goal is to help the user in a natural and effective way.

You have access to the user's notes, ideas, journal entries and projects.

When the user sends you a message:
1. Analyze the context and intention of the message
2. If it's a question or information request, respond directly
3. If it's a note, idea or journal entry, suggest saving it
4. If it's a task or project, help organize it

Language handling:
- ALWAYS respond in the language used by the user in their message
- If the user writes in Spanish, respond in Spanish
- If the user writes in English, respond in English

Remember:
- Be concise but informative
- Suggest actions when appropriate
- Use emojis moderately to make the conversation more friendly.`

// ContextPair is a single key/value entry of extra context. A slice keeps
// the caller's ordering, which the composed prompt must preserve.
type ContextPair struct {
	Key   string
	Value string
}

// Provider holds the mutable base instruction and the persisted context
// mapping. Safe for concurrent use; the file watcher reloads it when the
// documents are edited outside the bot.
type Provider struct {
	p store.Provider

	mu   sync.RWMutex
	base models.BasePrompt
	ctx  map[string]string
}

// NewProvider loads (or seeds) the prompt singletons.
func NewProvider(p store.Provider) (*Provider, error) {
	if err := p.EnsureDir(Dir); err != nil {
		return nil, err
	}
	pr := &Provider{p: p, ctx: map[string]string{}}

	if !store.LoadSingleton(p, basePromptDoc, &pr.base) {
		pr.base = models.BasePrompt{Role: "system", Content: defaultBasePrompt}
		if err := store.SaveSingleton(p, basePromptDoc, pr.base); err != nil {
			return nil, fmt.Errorf("prompt: seed base prompt: %w", err)
		}
	}
	if !store.LoadSingleton(p, contextDoc, &pr.ctx) {
		if err := store.SaveSingleton(p, contextDoc, pr.ctx); err != nil {
			return nil, fmt.Errorf("prompt: seed context: %w", err)
		}
	}
	return pr, nil
}

// Prompt returns a copy of the base prompt. When extra context pairs are
// given, a "key: value" line is appended per non-empty value, in the order
// given.
func (pr *Provider) Prompt(extra ...ContextPair) models.BasePrompt {
	pr.mu.RLock()
	out := pr.base
	pr.mu.RUnlock()

	block := ""
	for _, kv := range extra {
		if kv.Value == "" {
			continue
		}
		block += fmt.Sprintf("%s: %s\n", kv.Key, kv.Value)
	}
	if block != "" {
		out.Content += "\n\nCurrent context:\n" + block
	}
	return out
}

// UpdateBasePrompt replaces the base instruction content and persists it.
func (pr *Provider) UpdateBasePrompt(content string) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	prev := pr.base
	pr.base.Content = content
	if err := store.SaveSingleton(pr.p, basePromptDoc, pr.base); err != nil {
		pr.base = prev
		return err
	}
	return nil
}

// SetContext sets a key in the persisted context mapping.
func (pr *Provider) SetContext(key, value string) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.ctx[key] = value
	return store.SaveSingleton(pr.p, contextDoc, pr.ctx)
}

// ClearContext empties the persisted context mapping.
func (pr *Provider) ClearContext() error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.ctx = map[string]string{}
	return store.SaveSingleton(pr.p, contextDoc, pr.ctx)
}

// Context returns a copy of the persisted context mapping.
func (pr *Provider) Context() map[string]string {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	out := make(map[string]string, len(pr.ctx))
	for k, v := range pr.ctx {
		out[k] = v
	}
	return out
}

// Reload re-reads both singletons from disk, keeping current values when a
// document is missing or malformed.
func (pr *Provider) Reload() {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	var base models.BasePrompt
	if store.LoadSingleton(pr.p, basePromptDoc, &base) {
		pr.base = base
	}
	ctx := map[string]string{}
	if store.LoadSingleton(pr.p, contextDoc, &ctx) {
		pr.ctx = ctx
	}
	slog.Debug("prompt: reloaded")
}
