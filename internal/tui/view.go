package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tokdeck/tokdeck/internal/catalog"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.screen == ScreenLogin {
		return m.viewLogin()
	}
	return m.viewCatalog()
}

func (m *Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("tokdeck"))
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("Sign in to the token service"))
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View() + " signing in...\n")
	} else if m.loginForm != nil {
		b.WriteString(m.loginForm.View())
	}

	if m.status != "" {
		b.WriteString("\n" + m.statusLine())
	}
	return b.String()
}

func (m *Model) viewCatalog() string {
	var b strings.Builder

	title := m.styles.Title.Render("tokdeck")
	sub := m.styles.Dim.Render("design token catalog")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, title, " ", sub))
	b.WriteString("\n\n")

	b.WriteString(m.viewCategoryChips())
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + " loading catalog...\n")
	} else {
		b.WriteString(m.viewRows())
	}

	b.WriteString("\n")
	b.WriteString(m.viewPager())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.statusLine())
		b.WriteString("\n")
	}

	if m.overlay.open() {
		b.WriteString("\n")
		b.WriteString(m.viewOverlay())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewCategoryChips renders the server's category set with its filter state.
// The digit in front of each chip is the toggle key.
func (m *Model) viewCategoryChips() string {
	if len(m.categories) == 0 {
		return m.styles.Muted.Render("no categories reported")
	}

	chips := make([]string, 0, len(m.categories))
	for i, name := range m.categories {
		accent := lipgloss.NewStyle().Foreground(DefaultTheme.CategoryColor(name))
		chip := fmt.Sprintf("%s%s %s",
			m.styles.KeyBinding.Render(fmt.Sprintf("%d", i+1)),
			CheckboxIcon(m.selected[name], m.styles),
			accent.Render(name),
		)
		chips = append(chips, chip)
	}
	return strings.Join(chips, "  ")
}

func (m *Model) viewRows() string {
	page := m.visible()
	if len(page.Items) == 0 {
		if len(m.tokens) == 0 {
			return m.styles.Muted.Render("catalog is empty — press n to add a token") + "\n"
		}
		return m.styles.Muted.Render("no tokens match the current filters") + "\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-24s %-20s %-10s %s", "NAME", "VALUE", "CATEGORY", "DESCRIPTION")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	for i, tok := range page.Items {
		marker := "  "
		rowStyle := m.styles.Base
		if i == m.cursor {
			marker = m.styles.Selected.Render("▸ ")
			rowStyle = m.styles.Bold
		}
		accent := lipgloss.NewStyle().Foreground(DefaultTheme.CategoryColor(tok.Category))
		b.WriteString(fmt.Sprintf("%s%s %s %s %s\n",
			marker,
			rowStyle.Render(pad(tok.Name, 24)),
			accent.Render(pad(tok.Value, 20)),
			m.styles.Dim.Render(pad(tok.Category, 10)),
			m.styles.Dim.Render(truncate(tok.Description, 40)),
		))
	}
	return b.String()
}

func (m *Model) viewPager() string {
	page := m.visible()

	pager := m.pager
	pager.SetTotalPages(page.Count)
	pager.Page = page.Number - 1

	filtered := catalog.Filter(m.tokens, m.selected, m.search.Value())
	info := fmt.Sprintf("page %d/%d · %d of %d tokens",
		page.Number, page.Count, len(filtered), len(m.tokens))

	return pager.View() + "  " + m.styles.Dim.Render(info)
}

func (m *Model) viewOverlay() string {
	var body string
	switch m.overlay.kind {
	case overlayConfirmDelete:
		prompt := fmt.Sprintf("Delete %q? This cannot be undone.", m.overlay.name)
		hint := m.styles.KeyHint.Render("y confirm · n cancel")
		if m.busy {
			hint = m.spin.View() + " deleting..."
		}
		body = m.styles.Warning.Render(prompt) + "\n\n" + hint
	default:
		body = m.overlay.form.View()
		if m.busy {
			body += "\n" + m.spin.View() + " working..."
		}
	}

	titled := m.styles.Header.Render(m.overlay.title()) + "\n\n" + body
	return m.styles.BoxFocused.Render(titled)
}

func (m *Model) statusLine() string {
	if m.statusErr {
		return m.styles.Error.Render(m.status)
	}
	return m.styles.Success.Render(m.status)
}

func pad(s string, width int) string {
	s = truncate(s, width)
	if len(s) < width {
		return s + strings.Repeat(" ", width-len(s))
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
