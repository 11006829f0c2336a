package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stokesdev/ghkey/internal/config"
	"github.com/stokesdev/ghkey/internal/doctor"
	"github.com/stokesdev/ghkey/internal/keygen"
	"github.com/stokesdev/ghkey/internal/ui"
)

// DoctorOutput is the JSON shape for `ghkey doctor --json`.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput groups results by category.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// runDoctor collects, runs, and renders the diagnostic checks.
func runDoctor() error {
	cfg, err := config.LoadDefault(cfgFile)
	if err != nil {
		return err
	}

	checks, err := collectChecks(cfg)
	if err != nil {
		return err
	}

	results := doctor.RunAll(checks)

	if doctorJSON {
		return outputDoctorJSON(checks, results)
	}
	return outputDoctorText(checks, results)
}

// collectChecks builds the check list for the current machine and config.
func collectChecks(cfg *config.Config) ([]doctor.Check, error) {
	keyPath, err := deviceKeyPath(cfg)
	if err != nil {
		return nil, err
	}

	return []doctor.Check{
		&doctor.PlatformCheck{},
		&doctor.ToolchainCheck{},
		&doctor.SSHKeygenCheck{},
		&doctor.SSHDirCheck{Dir: cfg.ExpandedSSHDir()},
		&doctor.KeyPairCheck{KeyPath: keyPath},
		&doctor.ConfigStanzaCheck{ConfigPath: cfg.SSHConfigPath(), Host: cfg.Host},
		&doctor.AgentKeyCheck{PubPath: keygen.PublicPath(keyPath)},
	}, nil
}

// outputDoctorJSON renders results as indented JSON on stdout.
func outputDoctorJSON(checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := make(map[string][]doctor.CheckResult)
	categoryOrder := []string{}

	for i, check := range checks {
		cat := check.Category()
		if _, exists := grouped[cat]; !exists {
			categoryOrder = append(categoryOrder, cat)
		}
		grouped[cat] = append(grouped[cat], results[i])
	}

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(categoryOrder)),
	}
	for _, cat := range categoryOrder {
		output.Categories = append(output.Categories, CategoryOutput{
			Name:    cat,
			Results: grouped[cat],
		})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// statusSymbol maps a check status to its glyph. Each status gets its own
// symbol so the distinction survives uncolored output.
func statusSymbol(s doctor.CheckStatus) string {
	switch s {
	case doctor.StatusPass:
		return ui.SymbolComplete
	case doctor.StatusWarn:
		return ui.SymbolWarning
	case doctor.StatusFail:
		return ui.SymbolFail
	default:
		return ui.SymbolPending
	}
}

// outputDoctorText renders a human-readable report.
func outputDoctorText(checks []doctor.Check, results []doctor.CheckResult) error {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Println()
	fmt.Println(headerStyle.Render("ghkey diagnostic report"))
	fmt.Println()

	rendered := make(map[string]bool)
	for i, check := range checks {
		cat := check.Category()
		if !rendered[cat] {
			fmt.Println(headerStyle.Render(cat))
			rendered[cat] = true
		}

		result := results[i]
		symbol := statusSymbol(result.Status)
		var style lipgloss.Style
		switch result.Status {
		case doctor.StatusPass:
			style = successStyle
		case doctor.StatusWarn:
			style = warnStyle
		case doctor.StatusFail:
			style = errorStyle
		}

		fmt.Printf("  %s %s\n", style.Render(symbol), result.Message)

		if result.Suggestion != "" && result.Status != doctor.StatusPass {
			for _, line := range strings.Split(result.Suggestion, "\n") {
				fmt.Printf("    %s\n", mutedStyle.Render(line))
			}
		}

		// Blank line between categories.
		if i+1 < len(checks) && checks[i+1].Category() != cat {
			fmt.Println()
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("━", 60))
	fmt.Println()

	if doctor.HasIssues(results) {
		fmt.Printf("%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Printf("%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	fmt.Println()

	return nil
}
