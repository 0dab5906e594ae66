package tui

import (
	"strings"

	"github.com/atotto/clipboard"
)

// systemClipboard is the menu.Clipboard used by the interactive app.
type systemClipboard struct{}

func (systemClipboard) SetText(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return clipboard.WriteAll(s)
}
