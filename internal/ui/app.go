// Package ui is the Bubble Tea front end over the storefront engine.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/cartsync"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/filter"
	"github.com/five82/storefront/internal/logtail"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/shop"
)

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewFacets
	ViewCart
	ViewLog
)

const (
	logTailLines = 200
	defaultWidth = 100
)

const toastTTL = 4 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   *catalog.Store
	Cart      *cart.Store
	Sync      *cartsync.Client
	Config    *config.Config
	Notes     <-chan notify.Message
	Sort      filter.SortOption
	PrefsPath string
	Tick      time.Duration
}

type toast struct {
	msg notify.Message
	at  time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	catalog   *catalog.Store
	cart      *cart.Store
	sync      *cartsync.Client
	config    config.Config
	notes     <-chan notify.Message
	prefsPath string
	tick      time.Duration

	// UI state
	keys     keyMap
	help     help.Model
	styles   Styles
	view     View
	width    int
	height   int
	showHelp bool
	toast    *toast

	// Browse state
	criteria     filter.Criteria
	search       textinput.Model
	searching    bool
	results      []shop.Product
	catalogStamp time.Time
	selected     int
	sizeIdx      int
	colorIdx     int

	// Facet panel state
	facets   []facetEntry
	facetIdx int

	// Cart state
	cartIdx int

	// Activity log state
	logView  viewport.Model
	logLines []string
	logErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = 500 * time.Millisecond
	}
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	catalogStore := opts.Catalog
	if catalogStore == nil {
		catalogStore = &catalog.Store{}
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search name or category"
	search.CharLimit = 64

	m := Model{
		ctx:       ctx,
		catalog:   catalogStore,
		cart:      opts.Cart,
		sync:      opts.Sync,
		config:    cfg,
		notes:     opts.Notes,
		prefsPath: prefsPath,
		tick:      tick,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    draculaTheme().Styles(),
		view:      ViewBrowse,
		criteria:  filter.Criteria{Sort: opts.Sort},
		search:    search,
		facets:    facetEntries(),
		logView:   viewport.New(defaultWidth, 20),
	}
	if m.criteria.Sort == "" {
		m.criteria.Sort = filter.SortRelevant
	}
	m.refreshResults()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		next.drainNotes()
		return next, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeLogView()
		return m, nil

	case tickMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.drainNotes()
		if m.toast != nil && time.Since(m.toast.at) > toastTTL {
			m.toast = nil
		}
		if stamp := m.catalog.Snapshot().LastUpdated; !stamp.Equal(m.catalogStamp) {
			m.refreshResults()
		}
		if m.view == ViewLog {
			m.loadLog()
		}
		return m, tickCmd(m.tick)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.view == ViewCart {
			m.view = ViewBrowse
		} else {
			m.view = ViewCart
		}
		return m, nil
	case key.Matches(msg, m.keys.Facets):
		m.view = ViewFacets
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		if m.view == ViewLog {
			m.view = ViewBrowse
		} else {
			m.view = ViewLog
			m.loadLog()
			m.logView.GotoBottom()
		}
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.view = ViewBrowse
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.view = ViewBrowse
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.CycleSort):
		m.criteria.Sort = m.criteria.Sort.Next()
		m.refreshResults()
		m.saveSort()
		return m, nil
	}

	switch m.view {
	case ViewFacets:
		m.handleFacetKey(msg)
	case ViewCart:
		m.handleCartKey(msg)
	case ViewLog:
		m.handleLogKey(msg)
	default:
		m.handleBrowseKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.criteria.Search = ""
		m.refreshResults()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.criteria.Search {
		m.criteria.Search = m.search.Value()
		m.refreshResults()
	}
	return m, cmd
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(-len(m.results))
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.results))
	case key.Matches(msg, m.keys.CycleSize):
		m.sizeIdx++
	case key.Matches(msg, m.keys.CycleColor):
		m.colorIdx++
	case key.Matches(msg, m.keys.Add):
		m.addSelected()
	}
}

func (m *Model) handleFacetKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.facetIdx < len(m.facets)-1 {
			m.facetIdx++
		}
	case key.Matches(msg, m.keys.Up):
		if m.facetIdx > 0 {
			m.facetIdx--
		}
	case key.Matches(msg, m.keys.Toggle):
		m.criteria = toggleFacet(m.criteria, m.facets[m.facetIdx])
		m.refreshResults()
	case key.Matches(msg, m.keys.ClearFacets):
		m.criteria = filter.Criteria{Search: m.criteria.Search, Sort: m.criteria.Sort}
		m.refreshResults()
	}
}

func (m *Model) handleCartKey(msg tea.KeyMsg) {
	if m.cart == nil {
		return
	}
	lines := m.cart.Lines()
	if len(lines) == 0 {
		return
	}
	if m.cartIdx >= len(lines) {
		m.cartIdx = len(lines) - 1
	}
	line := lines[m.cartIdx]

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cartIdx < len(lines)-1 {
			m.cartIdx++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cartIdx > 0 {
			m.cartIdx--
		}
	case key.Matches(msg, m.keys.Inc):
		_ = m.cart.UpdateQuantity(line.ItemID, line.Size, line.Color, line.Quantity+1)
	case key.Matches(msg, m.keys.Dec):
		_ = m.cart.UpdateQuantity(line.ItemID, line.Size, line.Color, line.Quantity-1)
	case key.Matches(msg, m.keys.Remove):
		_ = m.cart.UpdateQuantity(line.ItemID, line.Size, line.Color, 0)
	}
	if n := m.cart.Len(); m.cartIdx >= n && n > 0 {
		m.cartIdx = n - 1
	}
}

func (m *Model) handleLogKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.logView.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logView.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.logView.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logView.GotoBottom()
	}
}

// addSelected adds one unit of the highlighted product with the chosen size
// and color. A product without sizes or colors yields an empty choice, which
// the cart rejects with a notification.
func (m *Model) addSelected() {
	p, ok := m.selectedProduct()
	if !ok || m.cart == nil {
		return
	}
	_ = m.cart.AddToCart(p.ID, pick(p.Sizes, m.sizeIdx), pick(p.Colors, m.colorIdx), 1)
}

func (m *Model) moveSelection(delta int) {
	if len(m.results) == 0 {
		m.selected = 0
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.results) {
		next = len(m.results) - 1
	}
	if next != m.selected {
		m.sizeIdx, m.colorIdx = 0, 0
	}
	m.selected = next
}

func (m Model) selectedProduct() (shop.Product, bool) {
	if m.selected < 0 || m.selected >= len(m.results) {
		return shop.Product{}, false
	}
	return m.results[m.selected], true
}

// refreshResults reruns the pipeline over the latest catalog snapshot.
func (m *Model) refreshResults() {
	snap := m.catalog.Snapshot()
	m.catalogStamp = snap.LastUpdated
	m.results = filter.Apply(snap.Products, m.criteria)
	if m.selected >= len(m.results) {
		m.selected = max(len(m.results)-1, 0)
	}
}

// loadLog rereads the log tail into the viewport. The view keeps following
// new lines while it is scrolled to the bottom.
func (m *Model) loadLog() {
	m.logLines, m.logErr = logtail.Read(m.config.LogFile, logTailLines)
	m.resizeLogView()
	follow := m.logView.AtBottom()
	m.logView.SetContent(m.renderLogContent())
	if follow {
		m.logView.GotoBottom()
	}
}

func (m *Model) resizeLogView() {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	m.logView.Width = width
	m.logView.Height = m.bodyHeight()
}

func (m *Model) drainNotes() {
	if m.notes == nil {
		return
	}
	for {
		select {
		case msg := <-m.notes:
			m.toast = &toast{msg: msg, at: time.Now()}
		default:
			return
		}
	}
}

func (m Model) saveSort() {
	p, _ := prefs.Load(m.prefsPath)
	p.Sort = string(m.criteria.Sort)
	_ = prefs.Save(m.prefsPath, p)
}

func pick(values []string, idx int) string {
	if len(values) == 0 {
		return ""
	}
	return values[idx%len(values)]
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
