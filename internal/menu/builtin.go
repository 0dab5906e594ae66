package menu

import "fmt"

// The built-in tools section is computed as a function of
// IncludeBuiltInTools and the user section count, never stored as data.
// That keeps "built-in rows are never user rows" structurally true: user
// section indices can't collide with a section that doesn't exist in the
// tree, and the reserved id prefix keeps the item ids out of caller space.

// BuiltinTool identifies one row of the trailing tools section.
type BuiltinTool int

const (
	BuiltinViewLogs BuiltinTool = iota
	BuiltinViewSettings
	BuiltinViewCredentials
)

const builtinIDPrefix = "inspect.builtin."

func BuiltinTools() []BuiltinTool {
	return []BuiltinTool{BuiltinViewLogs, BuiltinViewSettings, BuiltinViewCredentials}
}

func (t BuiltinTool) ID() string {
	switch t {
	case BuiltinViewLogs:
		return builtinIDPrefix + "logs"
	case BuiltinViewSettings:
		return builtinIDPrefix + "settings"
	case BuiltinViewCredentials:
		return builtinIDPrefix + "credentials"
	}
	panic(fmt.Sprintf("menu: unknown builtin tool %d", int(t)))
}

func (t BuiltinTool) Title() string {
	switch t {
	case BuiltinViewLogs:
		return "View Logs"
	case BuiltinViewSettings:
		return "View Saved Settings"
	case BuiltinViewCredentials:
		return "View Credential Items"
	}
	panic(fmt.Sprintf("menu: unknown builtin tool %d", int(t)))
}

// Item synthesizes the tool's action row on demand.
func (t BuiltinTool) Item() Item {
	return NewAction(t.ID(), t.Title())
}

// SectionCount includes the computed trailing tools section when enabled.
func (m Menu) SectionCount() int {
	if m.IncludeBuiltInTools {
		return len(m.Sections) + 1
	}
	return len(m.Sections)
}

// IsBuiltinSection reports whether the flat section index addresses the
// computed tools section.
func (m Menu) IsBuiltinSection(section int) bool {
	return m.IncludeBuiltInTools && section == len(m.Sections)
}

func (m Menu) RowCount(section int) int {
	if m.IsBuiltinSection(section) {
		return len(BuiltinTools())
	}
	return len(m.Sections[section].Items)
}

// SectionTitle returns the user section's title; the tools section has none.
func (m Menu) SectionTitle(section int) string {
	if m.IsBuiltinSection(section) {
		return ""
	}
	return m.Sections[section].Title
}

// BuiltinAt resolves a flat coordinate to a built-in tool, if the coordinate
// falls inside the computed tools section.
func (m Menu) BuiltinAt(section, row int) (BuiltinTool, bool) {
	if !m.IsBuiltinSection(section) {
		return 0, false
	}
	tools := BuiltinTools()
	if row < 0 || row >= len(tools) {
		panic(fmt.Sprintf("menu: builtin row %d out of range", row))
	}
	return tools[row], true
}

// ItemAt resolves a flat coordinate to its item, synthesizing built-in tool
// rows as needed. Out-of-range coordinates panic.
func (m Menu) ItemAt(section, row int) Item {
	if tool, ok := m.BuiltinAt(section, row); ok {
		return tool.Item()
	}
	if section < 0 || section >= len(m.Sections) {
		panic(fmt.Sprintf("menu: section %d out of range", section))
	}
	items := m.Sections[section].Items
	if row < 0 || row >= len(items) {
		panic(fmt.Sprintf("menu: row %d out of range in section %d", row, section))
	}
	return items[row]
}
