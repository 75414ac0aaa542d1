package server

import (
	"sort"
	"time"
)

// WinEntry is a single leaderboard row.
type WinEntry struct {
	Username string
	Wins     int
}

// LobbySnapshot is an immutable view of the lobby for rendering.
type LobbySnapshot struct {
	Players int
	TopWins []WinEntry // Top N winners for the menu leaderboard
	Uptime  time.Duration
}

// LobbyState holds what connected clients share: who is online and how often
// each username has won. Each client plays its own independent session.
type LobbyState struct {
	wins    map[string]int
	started time.Time
}

// NewLobbyState creates an empty lobby.
func NewLobbyState() *LobbyState {
	return &LobbyState{
		wins:    make(map[string]int),
		started: time.Now(),
	}
}

// RecordWin credits one win to username. Anonymous wins are not ranked.
func (l *LobbyState) RecordWin(username string) {
	if username == "" {
		return
	}
	l.wins[username]++
}

// TopWins returns up to n entries ordered by wins, then username.
func (l *LobbyState) TopWins(n int) []WinEntry {
	entries := make([]WinEntry, 0, len(l.wins))
	for name, wins := range l.wins {
		entries = append(entries, WinEntry{Username: name, Wins: wins})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Username < entries[j].Username
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
