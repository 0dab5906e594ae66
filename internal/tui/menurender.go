package tui

import (
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/menu"
)

// menuRow is one selectable (or header) line of a flattened menu scope.
// Selectable rows carry the (section, row) coordinate the controller
// dispatches on.
type menuRow struct {
	section int
	row     int
	header  bool
	title   string
}

func flattenMenu(m *menu.Menu) []menuRow {
	var rows []menuRow
	for s := 0; s < m.SectionCount(); s++ {
		if t := m.SectionTitle(s); t != "" {
			rows = append(rows, menuRow{section: s, header: true, title: t})
		} else if s > 0 {
			rows = append(rows, menuRow{section: s, header: true})
		}
		for r := 0; r < m.RowCount(s); r++ {
			rows = append(rows, menuRow{section: s, row: r})
		}
	}
	return rows
}

// nextSelectable walks from idx in direction dir (+1/-1) to the nearest
// non-header row, staying put when none exists.
func nextSelectable(rows []menuRow, idx, dir int) int {
	for i := idx + dir; i >= 0 && i < len(rows); i += dir {
		if !rows[i].header {
			return i
		}
	}
	return idx
}

func firstSelectable(rows []menuRow) int {
	for i, r := range rows {
		if !r.header {
			return i
		}
	}
	return 0
}

// rowDetail is the right-aligned value column of a menu row.
func rowDetail(c *menu.Controller, it menu.Item, truncateAt int) string {
	switch it.Kind {
	case menu.KindAction:
		return ""
	case menu.KindInfo:
		if c.CopiedItemID() == it.ID {
			return styleAccent.Render("Copied")
		}
		return anyval.Truncate(it.Info, truncateAt)
	case menu.KindToggle:
		if it.ToggleOn(c.KV()) {
			return "[on]"
		}
		return "[off]"
	case menu.KindStepper:
		v := it.StepperValue(c.KV())
		return glyphArrow() + " " + strconv.FormatFloat(v, 'f', -1, 64)
	case menu.KindPicker:
		return glyphArrow() + " " + it.PickerLabel(c.KV())
	case menu.KindMultiChoice:
		if it.Selected {
			return glyphCheck()
		}
		return ""
	case menu.KindSubSection:
		return glyphTwistyCollapsed()
	default:
		return ""
	}
}

// menuLine lays out a single row: left title, right-aligned detail, padded
// or cut to width.
func menuLine(left, right string, selected bool, width int) string {
	if width < 8 {
		width = 8
	}

	gap := 2
	leftW := xansi.StringWidth(left)
	rightW := xansi.StringWidth(right)
	availLeft := width
	if rightW > 0 {
		availLeft = width - gap - rightW
		if availLeft < 1 {
			availLeft = 1
		}
	}
	if leftW > availLeft {
		left = xansi.Cut(left, 0, availLeft)
		leftW = xansi.StringWidth(left)
	}

	line := left
	if rightW > 0 {
		if leftW < availLeft {
			line += strings.Repeat(" ", availLeft-leftW)
		}
		line += strings.Repeat(" ", gap) + right
	}

	lineW := xansi.StringWidth(line)
	if lineW < width {
		line += strings.Repeat(" ", width-lineW)
	} else if lineW > width {
		line = xansi.Cut(line, 0, width)
	}

	if selected {
		return styleSelected.Render(line)
	}
	return line
}

// renderMenuBody renders the flattened rows with the cursor on rows[cursor].
func renderMenuBody(c *menu.Controller, rows []menuRow, cursor, width, truncateAt int) string {
	m := c.Menu()
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		if r.header {
			if r.title == "" {
				continue
			}
			b.WriteString(styleSectionTitle.Render(r.title))
			continue
		}
		it := m.ItemAt(r.section, r.row)
		b.WriteString(menuLine("  "+it.Title, rowDetail(c, it, truncateAt), i == cursor, width))
	}
	return b.String()
}
