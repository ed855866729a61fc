package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Tab    key.Binding
	Escape key.Binding
	Search key.Binding
	Facets key.Binding
	Logs   key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Browse actions
	Add        key.Binding
	CycleSize  key.Binding
	CycleColor key.Binding
	CycleSort  key.Binding

	// Facet actions
	Toggle      key.Binding
	ClearFacets key.Binding

	// Cart actions
	Inc    key.Binding
	Dec    key.Binding
	Remove key.Binding

	// Search/input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Toggle cart"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to products"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search name or category"),
		),
		Facets: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filters"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Activity log"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Browse actions
		Add: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter", "Add to cart"),
		),
		CycleSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Next size"),
		),
		CycleColor: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next color"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Cycle sort"),
		),

		// Facet actions
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "Toggle filter"),
		),
		ClearFacets: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear filters"),
		),

		// Cart actions
		Inc: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More"),
		),
		Dec: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Fewer"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x", "Remove line"),
		),

		// Search/input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply search"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Views
		{k.Tab, k.Facets, k.Logs, k.Escape, k.Search},
		{k.Up, k.Down, k.Top, k.Bottom},
		// Browse
		{k.Add, k.CycleSize, k.CycleColor, k.CycleSort},
		// Filters and cart
		{k.Toggle, k.ClearFacets, k.Inc, k.Dec, k.Remove},
		// General
		{k.Help, k.Quit},
	}
}

// viewHelp returns the bindings shown in the footer for the current state.
func (k keyMap) viewHelp(view View, searching bool) []key.Binding {
	switch {
	case searching:
		return []key.Binding{k.Confirm, k.Escape}
	case view == ViewFacets:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.ClearFacets, k.Escape}
	case view == ViewCart:
		return []key.Binding{k.Up, k.Down, k.Inc, k.Dec, k.Remove, k.Tab}
	case view == ViewLog:
		return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Logs}
	default:
		return []key.Binding{k.Search, k.Facets, k.CycleSort, k.CycleSize, k.CycleColor, k.Add, k.Tab, k.Logs, k.Help, k.Quit}
	}
}
