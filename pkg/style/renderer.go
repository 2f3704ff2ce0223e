package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/cursync/cursync/pkg/types"
)

// RenderResults renders one progress line per executed operation, in
// execution order, the way a user watching a sync expects to read it.
func RenderResults(results []types.OperationResult) string {
	if len(results) == 0 {
		return MutedStyle.Render("nothing to do")
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderResult(r))
	}
	return b.String()
}

func renderResult(r types.OperationResult) string {
	switch r.Status {
	case types.StatusDone:
		return fmt.Sprintf("%s %s", SuccessStyle.Render("✓"), r.Operation.Description)
	case types.StatusUnchanged:
		return fmt.Sprintf("%s %s", MutedStyle.Render("="), MutedStyle.Render(r.Operation.Description+" (already in place)"))
	case types.StatusWould:
		return fmt.Sprintf("%s %s", MutedStyle.Render("·"), "would "+r.Operation.Description)
	case types.StatusSkipped:
		return fmt.Sprintf("%s %s: %s", WarningStyle.Render("!"), r.Operation.Target, r.Message)
	case types.StatusFailed:
		return fmt.Sprintf("%s %s: %v", ErrorStyle.Render("✗"), r.Operation.Description, r.Error)
	default:
		return r.String()
	}
}

// RenderWarnings renders plan warnings, one per line.
func RenderWarnings(messages []string) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s", WarningStyle.Render("warning:"), msg))
	}
	return b.String()
}

// RenderStatus renders the link-state report for the status command.
func RenderStatus(statuses []types.LinkStatus, shadowed []string) string {
	if len(statuses) == 0 {
		return MutedStyle.Render("no links expected, resource tree is empty")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Link status"))
	b.WriteString("\n")

	for _, s := range statuses {
		b.WriteString(renderLinkStatus(s))
		b.WriteString("\n")
	}

	for _, msg := range shadowed {
		b.WriteString(fmt.Sprintf("%s %s\n", WarningStyle.Render("shadowed:"), msg))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderLinkStatus(s types.LinkStatus) string {
	name := s.Mapping.Target
	switch s.State {
	case types.LinkOK:
		return fmt.Sprintf("%s %s %s %s",
			SuccessStyle.Render("ok"), name,
			MutedStyle.Render("->"), PathStyle.Render(s.Mapping.Source))
	case types.LinkMissing:
		return fmt.Sprintf("%s %s %s", WarningStyle.Render("missing"), name,
			MutedStyle.Render("(run cursync sync)"))
	case types.LinkWrongTarget:
		return fmt.Sprintf("%s %s %s %s",
			WarningStyle.Render("stale"), name,
			MutedStyle.Render("->"), PathStyle.Render(s.ActualTarget))
	case types.LinkBlocked:
		return fmt.Sprintf("%s %s %s", ErrorStyle.Render("blocked"), name,
			MutedStyle.Render("(real file or directory in the way)"))
	default:
		return fmt.Sprintf("%s %s", string(s.State), name)
	}
}

// Error renders a fatal error with pterm's error prefix.
func Error(err error) string {
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}
