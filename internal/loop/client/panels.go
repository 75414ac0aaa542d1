package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/grabdiamond/internal/game"
	"github.com/tomz197/grabdiamond/internal/loop/server"
)

// styles are the lipgloss styles for panels and the HUD. The renderer is bound
// to the client's writer and forced to 256 colours, since SSH sessions and raw
// terminals do not report their colour profile.
type styles struct {
	panel    lipgloss.Style
	title    lipgloss.Style
	subtitle lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	hint     lipgloss.Style
	player   lipgloss.Style
	opponent lipgloss.Style
	lightOn  lipgloss.Style
	lightOff lipgloss.Style
	banner   lipgloss.Style
	warning  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	return styles{
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("51")).
			Padding(0, 2),
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		subtitle: r.NewStyle().Italic(true).Foreground(lipgloss.Color("153")),
		item:     r.NewStyle().Foreground(lipgloss.Color("250")),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("51")),
		hint:     r.NewStyle().Foreground(lipgloss.Color("244")),
		player:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		opponent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		lightOn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		lightOff: r.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		banner: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 3).
			Bold(true).
			Foreground(lipgloss.Color("226")),
		warning: r.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 2),
	}
}

// menuPanel renders the title, the mode entries and the lobby board.
func (st styles) menuPanel(selected int, lobby *server.LobbySnapshot) string {
	lines := []string{
		st.title.Render("◆  GRAB THE DIAMOND  ◆"),
		st.subtitle.Render("wait for the dark, then be quicker"),
		"",
	}
	for i, label := range menuLabels {
		entry := fmt.Sprintf("%d  %s", i+1, label)
		if i == selected {
			lines = append(lines, st.selected.Render(" ▸ "+entry+" "))
		} else {
			lines = append(lines, st.item.Render("   "+entry+" "))
		}
	}
	lines = append(lines, "", st.hint.Render("↑/↓ select · Enter start · Q quit"))

	if lobby != nil {
		lines = append(lines, "", st.hint.Render(fmt.Sprintf("Online: %d", lobby.Players)))
		if len(lobby.TopWins) > 0 {
			lines = append(lines, st.title.Render("Top winners vs bot"))
			for i, e := range lobby.TopWins {
				lines = append(lines, st.item.Render(fmt.Sprintf("%d. %-16s %3d", i+1, e.Username, e.Wins)))
			}
		}
	}
	return st.panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// difficultyPanel renders the difficulty modal for mode.
func (st styles) difficultyPanel(mode game.Mode, selected int) string {
	lines := []string{
		st.title.Render("Choose difficulty"),
		st.subtitle.Render("vs " + opponentName(mode)),
		"",
	}
	for i, d := range game.Difficulties {
		entry := fmt.Sprintf("%d  %-6s", i+1, capitalize(d.String()))
		if i == selected {
			lines = append(lines, st.selected.Render(" ▸ "+entry+" "))
		} else {
			lines = append(lines, st.item.Render("   "+entry+" "))
		}
	}
	lines = append(lines, "", st.hint.Render("Enter start · Esc cancel"))
	return st.panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// helpPanel renders the how-to-play instructions.
func (st styles) helpPanel(points int) string {
	body := []string{
		"Grab the diamond while the lamp is dark.",
		"Player 1: A, ← or click your hand.",
		"Player 2: L, → or Space (friend mode).",
		"Bot mode: Space grabs too; the bot grabs on its own.",
		"Only one hand can grab the diamond at a time.",
		fmt.Sprintf("First to grab the diamond gets %d points.", points),
		"",
		"R reset · Esc menu · H help · Q quit",
	}
	lines := []string{st.title.Render("How to Play"), ""}
	for _, b := range body {
		lines = append(lines, st.item.Render(b))
	}
	lines = append(lines, "", st.hint.Render("Enter to close"))
	return st.panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// scoreLine renders "Player: X | Bot: Y".
func (st styles) scoreLine(snap game.Snapshot) string {
	return st.player.Render(fmt.Sprintf("Player: %d", snap.Scores[game.SideA])) +
		st.hint.Render(" | ") +
		st.opponent.Render(fmt.Sprintf("%s: %d", opponentName(snap.Mode), snap.Scores[game.SideB]))
}

// lightLine renders the light status.
func (st styles) lightLine(lightOn bool) string {
	if lightOn {
		return st.lightOn.Render("● LIGHT ON  - hands off")
	}
	return st.lightOff.Render("○ LIGHT OFF - GRAB!")
}

// winnerBanner renders the end-of-game banner.
func (st styles) winnerBanner(snap game.Snapshot) string {
	who := "PLAYER"
	if snap.Winner == game.SideB {
		who = strings.ToUpper(opponentName(snap.Mode))
	}
	return st.banner.Render(lipgloss.JoinVertical(lipgloss.Center,
		who+" WINS!",
		st.hint.Render("R play again · Esc menu"),
	))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
