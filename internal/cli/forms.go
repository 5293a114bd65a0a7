package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
)

// commonHoldReasons seeds the hold form. Free text is still accepted.
var commonHoldReasons = []string{
	"Awaiting permit",
	"Awaiting materials",
	"Manpower",
	"Crane / lifting",
	"Scaffolding",
	"Weather",
	"Gas test",
	"Other",
}

// tariqHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func tariqHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// holdReasonForm asks for the reason and remarks of a new hold. Picking
// "Other" requires typing the reason.
func holdReasonForm(title string, choice, custom, remarks *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(commonHoldReasons))
	for _, r := range commonHoldReasons {
		options = append(options, huh.NewOption(r, r))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Why is "+title+" on hold?").
				Options(options...).
				Value(choice),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Reason").
				Value(custom).
				Validate(validateRequired),
		).WithHideFunc(func() bool { return *choice != "Other" }),
		huh.NewGroup(
			huh.NewText().
				Title("Remarks (optional)").
				Value(remarks),
		),
	).WithTheme(tariqHuhTheme()).WithShowHelp(false)
}

// holdReason resolves the form answers to the reason that is stored.
func holdReason(choice, custom string) string {
	if choice == "Other" {
		return strings.TrimSpace(custom)
	}
	return choice
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(tariqHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}
