package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/filter"
	"github.com/five82/storefront/internal/logtail"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/shop"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.searching || m.criteria.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	switch m.view {
	case ViewFacets:
		b.WriteString(m.renderFacets())
	case ViewCart:
		b.WriteString(m.renderCart())
	case ViewLog:
		b.WriteString(m.renderLog())
	default:
		b.WriteString(m.renderBrowse())
	}
	b.WriteString("\n")
	b.WriteString(m.renderToast())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	count := 0
	amount := decimal.Zero
	if m.cart != nil {
		sum := m.cart.Summary(m.config.DeliveryFee)
		count = sum.Count
		amount = sum.Total
	}
	session := "guest"
	if m.sync != nil && m.sync.Session().Active() {
		session = "signed in"
	}
	status := ""
	if snap := m.catalog.Snapshot(); snap.IsOffline() {
		status = m.styles.Danger.Render(" catalog offline")
	}
	line := fmt.Sprintf("STOREFRONT  cart: %d  total: %s  sort: %s  %s",
		count, m.config.FormatPrice(amount), m.criteria.Sort.Label(), session)
	header := m.styles.Header.Render(line) + status
	if facets := activeFacetSummary(m.criteria); facets != "" {
		header += "\n" + m.styles.Muted.Render(facets)
	}
	return header
}

func (m Model) renderBrowse() string {
	if len(m.results) == 0 {
		return m.styles.Muted.Render("No products found matching your criteria. Try adjusting your filters.")
	}
	start, end := window(len(m.results), m.selected, m.bodyHeight())
	var b strings.Builder
	if line := m.renderBestSellers(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		p := m.results[i]
		row := fmt.Sprintf("%-32s %-10s %14s  %s", truncate(p.Name, 32), truncate(p.Category, 10),
			m.formatProductPrice(p), m.stockLabel(p))
		if i == m.selected {
			row = m.styles.Selected.Render(row)
			row += "\n" + m.renderChoice(p)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// renderBestSellers lists the featured products while no search or facet is
// active.
func (m Model) renderBestSellers() string {
	c := m.criteria
	if strings.TrimSpace(c.Search) != "" || len(c.Categories)+len(c.Sizes)+len(c.Colors)+len(c.Availability) > 0 {
		return ""
	}
	best := filter.BestSellers(m.catalog.Products(), filter.BestSellerLimit)
	if len(best) == 0 {
		return ""
	}
	names := make([]string, len(best))
	for i, p := range best {
		names[i] = p.Name
	}
	return m.styles.Accent.Render("Best sellers: " + strings.Join(names, ", "))
}

func (m Model) renderChoice(p shop.Product) string {
	size := pick(p.Sizes, m.sizeIdx)
	color := pick(p.Colors, m.colorIdx)
	if size == "" {
		size = "-"
	}
	if color == "" {
		color = "-"
	}
	return m.styles.Accent.Render(fmt.Sprintf("   size [s]: %s   color [c]: %s   enter: add to cart", size, color))
}

func (m Model) renderFacets() string {
	var b strings.Builder
	var last facetKind = -1
	for i, e := range m.facets {
		if e.kind != last {
			b.WriteString(m.styles.PanelHead.Render(e.kind.title()))
			b.WriteString("\n")
			last = e.kind
		}
		box := "[ ]"
		if facetChecked(m.criteria, e) {
			box = m.styles.Checked.Render("[x]")
		}
		row := fmt.Sprintf("  %s %s", box, e.label)
		if i == m.facetIdx {
			row = m.styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d products match", len(m.results))))
	return b.String()
}

func (m Model) renderCart() string {
	if m.cart == nil || m.cart.Len() == 0 {
		return m.styles.Muted.Render("Your cart is empty.")
	}
	var b strings.Builder
	for i, line := range m.cart.Lines() {
		name := line.ItemID
		price := "-"
		if p, ok := m.catalog.Lookup(line.ItemID); ok {
			name = p.Name
			price = m.formatProductPrice(p)
		}
		row := fmt.Sprintf("%-32s %-5s %-8s x%-3d %14s", truncate(name, 32), line.Size, line.Color, line.Quantity, price)
		if i == m.cartIdx {
			row = m.styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	sum := m.cart.Summary(m.config.DeliveryFee)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Subtotal  %s\n", m.config.FormatPrice(sum.Subtotal)))
	b.WriteString(fmt.Sprintf("Shipping  %s\n", m.config.FormatPrice(sum.DeliveryFee)))
	b.WriteString(m.styles.Text.Bold(true).Render(fmt.Sprintf("Total     %s", m.config.FormatPrice(sum.Total))))
	return b.String()
}

func (m Model) renderLog() string {
	if m.logErr != nil {
		return m.styles.Danger.Render(m.logErr.Error())
	}
	if len(m.logLines) == 0 {
		return m.styles.Muted.Render("No activity logged yet.")
	}
	return m.logView.View()
}

// renderLogContent formats the tail for the log viewport.
func (m Model) renderLogContent() string {
	var b strings.Builder
	for i, line := range m.logLines {
		if i > 0 {
			b.WriteString("\n")
		}
		e := logtail.Parse(line)
		if e.Level == "" {
			b.WriteString(line)
			continue
		}
		b.WriteString(m.levelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level)))
		b.WriteString(" ")
		b.WriteString(m.styles.Text.Render(e.Msg))
		if e.Attrs != "" {
			b.WriteString(" ")
			b.WriteString(m.styles.Muted.Render(e.Attrs))
		}
	}
	return b.String()
}

func (m Model) levelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return m.styles.Danger
	case "WARN":
		return m.styles.Warning
	case "DEBUG":
		return m.styles.Accent
	default:
		return m.styles.Success
	}
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	text := m.toast.msg.Text
	switch m.toast.msg.Severity {
	case notify.Error:
		text = m.styles.Danger.Render(text)
	case notify.Success:
		text = m.styles.Success.Render(text)
	default:
		text = m.styles.Warning.Render(text)
	}
	return text + "\n"
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render(m.help.ShortHelpView(m.keys.viewHelp(m.view, m.searching)))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.PanelHead.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("Press any key to close"))
	return b.String()
}

func (m Model) formatProductPrice(p shop.Product) string {
	if !p.HasValidPrice() {
		return "-"
	}
	return m.config.FormatPrice(decimal.NewFromFloat(p.Price))
}

func (m Model) stockLabel(p shop.Product) string {
	if p.Availability {
		return m.styles.Success.Render("In Stock")
	}
	return m.styles.Muted.Render("Out Of Stock")
}

func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-6, 3)
}

// window returns the [start, end) slice of n rows that keeps selected visible.
func window(n, selected, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := selected - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = end - size
	}
	return start, end
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
