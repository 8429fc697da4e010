package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/ladder/internal/domain/bridge"
)

const bridgesHeader = "Strictly-easier bridge suggestions (Zerotrac):"

const choicePrompt = "Type 'solve' for a full solution, 'bridges' for easier practice, or ENTER to exit: "

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	slugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// printBridges renders a bridge list for people, one "- slug  (rating)" per line.
func printBridges(w io.Writer, bridges []bridge.Candidate) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(bridgesHeader))
	if len(bridges) == 0 {
		fmt.Fprintln(w, ratingStyle.Render("(no easier problems within delta)"))
		return
	}
	for _, b := range bridges {
		fmt.Fprintf(w, "- %s  %s\n", slugStyle.Render(b.Slug), ratingStyle.Render(fmt.Sprintf("(%.1f)", b.Rating)))
	}
}
