package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/samber/lo"
)

// Resolver maps key strings to actions and exposes the bindings to the
// bubbles help component.
type Resolver struct {
	bindings map[string]Action
	byAction map[Action][]string
	help     []key.Binding
	contexts [][]key.Binding
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to its last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	byContext := make(map[string][]key.Binding)
	var order []string
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.bindings[k] = b.Action
		}
		r.byAction[b.Action] = lo.Uniq(append(r.byAction[b.Action], b.Keys...))

		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(displayKey(b.Keys[0]), b.Description))
		r.help = append(r.help, kb)
		if _, seen := byContext[b.Context]; !seen {
			order = append(order, b.Context)
		}
		byContext[b.Context] = append(byContext[b.Context], kb)
	}
	for _, ctx := range order {
		r.contexts = append(r.contexts, byContext[ctx])
	}
	return r
}

// Default returns a resolver over All.
func Default() *Resolver {
	return NewResolver(All)
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(k string) Action {
	return r.bindings[k]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// ShortHelp implements help.KeyMap.
func (r *Resolver) ShortHelp() []key.Binding {
	return lo.Filter(r.help, func(b key.Binding, _ int) bool {
		switch r.Resolve(b.Keys()[0]) {
		case ActionPlayPause, ActionToggleMute, ActionHelp, ActionQuit:
			return true
		default:
			return false
		}
	})
}

// FullHelp implements help.KeyMap, one column per context.
func (r *Resolver) FullHelp() [][]key.Binding {
	return r.contexts
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
