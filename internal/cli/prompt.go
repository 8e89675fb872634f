package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timecard/internal/cli/formatter"
	"github.com/alexanderramin/timecard/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func timecardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateJustification(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a justification is required")
	}
	return nil
}

// huhJustification asks for the reason an edit has to become an override.
func huhJustification(req service.EditRequest, reason string) (string, error) {
	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(fmt.Sprintf("Override %s on %s", req.Key.SubjectID, req.Key.WorkDate)).
				Description(reason).
				Placeholder("why the allocation departs from the clock").
				Value(&text).
				Validate(validateJustification),
		),
	).WithTheme(timecardHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
