package models

import (
	"github.com/lorenzotomasdiez/black-story/internal/openrouter"
)

// Registry holds the free OpenRouter models.
type Registry struct {
	free []openrouter.Model
}

// NewRegistry keeps only models whose prompt and completion prices are both
// zero. Models without pricing are excluded.
func NewRegistry(models []openrouter.Model) *Registry {
	var free []openrouter.Model
	for _, m := range models {
		if m.Pricing.Free() {
			free = append(free, m)
		}
	}
	return &Registry{free: free}
}

// FreeModels returns all free models in the registry.
func (r *Registry) FreeModels() []openrouter.Model {
	return r.free
}

// SelectModels returns n models from the free list, cycling if n > available.
func (r *Registry) SelectModels(n int) []openrouter.Model {
	if len(r.free) == 0 || n <= 0 {
		return nil
	}
	selected := make([]openrouter.Model, n)
	for i := range n {
		selected[i] = r.free[i%len(r.free)]
	}
	return selected
}

// AssignFree fills in the model of every OpenRouter selector that names
// none, handing out distinct free models in order while they last. It
// reports whether every such selector got a model.
func (r *Registry) AssignFree(sels []Selector) ([]Selector, bool) {
	var open []int
	for i, s := range sels {
		if s.Provider == ProviderOpenRouter && s.Model == "" {
			open = append(open, i)
		}
	}
	out := make([]Selector, len(sels))
	copy(out, sels)
	picked := r.SelectModels(len(open))
	if len(picked) < len(open) {
		return out, false
	}
	for j, i := range open {
		out[i].Model = picked[j].ID
	}
	return out, true
}

// DefaultFreeModels is used when the models endpoint cannot be reached.
func DefaultFreeModels() []openrouter.Model {
	free := &openrouter.Pricing{Prompt: "0", Completion: "0"}
	return []openrouter.Model{
		{ID: "google/gemma-3-27b-it:free", Name: "Gemma 3 27B", Pricing: free},
		{ID: "qwen/qwen3-235b-a22b:free", Name: "Qwen3 235B A22B", Pricing: free},
		{ID: "meta-llama/llama-3.3-70b-instruct:free", Name: "Llama 3.3 70B Instruct", Pricing: free},
		{ID: "openai/gpt-oss-120b:free", Name: "GPT OSS 120B", Pricing: free},
	}
}
