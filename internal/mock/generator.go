// Package mock fabricates player activity so the whole pipeline — roster
// diffing, event notification, status feed — can be demoed without a game
// server or Discord credentials.
package mock

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/craftwatch/craftwatch/internal/extract"
)

var playerNames = []string{
	"Steve", "Alex", "Herobrine", "Notch", "Creeperbait",
	"DiamondDan", "Redstoner", "Pickaxe_Pete", "EnderWatcher", "Biomejumper",
}

var deathPhrases = []string{
	"fell from a high place",
	"was slain by Zombie",
	"was shot by Skeleton",
	"tried to swim in lava",
	"drowned",
	"blew up",
	"was killed by [Intentional Game Design]",
}

// Generator stands in for both the player-list query and the log tailer.
// Each ListPlayers call advances the simulation by one step: players drift
// on and off, and anyone online occasionally dies, which queues a record
// for the next Collect.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	online map[string]bool
	queued []extract.Record
	step   int
}

func NewGenerator(seed int64) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		online: make(map[string]bool),
	}
	// Start with a couple of players already on, like a server that has
	// been running for a while.
	g.online[playerNames[0]] = true
	g.online[playerNames[1]] = true
	return g
}

func (g *Generator) ListPlayers() (map[string]bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.step++
	g.advance()

	out := make(map[string]bool, len(g.online))
	for name := range g.online {
		out[name] = true
	}
	return out, nil
}

// Collect drains the death records queued since the last call.
func (g *Generator) Collect() []extract.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.queued
	g.queued = nil
	return out
}

func (g *Generator) advance() {
	// Roughly every third step somebody joins, every fourth somebody
	// leaves, every fifth somebody dies. Rates tuned for a watchable demo
	// at the default poll interval.
	if g.rng.Intn(3) == 0 {
		if name := g.pickOffline(); name != "" {
			g.online[name] = true
		}
	}
	if g.rng.Intn(4) == 0 && len(g.online) > 1 {
		delete(g.online, g.pickOnline())
	}
	if g.rng.Intn(5) == 0 && len(g.online) > 0 {
		victim := g.pickOnline()
		phrase := deathPhrases[g.rng.Intn(len(deathPhrases))]
		g.queued = append(g.queued, extract.Record{
			Text: fmt.Sprintf("%s %s", victim, phrase),
		})
	}
}

func (g *Generator) pickOnline() string {
	names := make([]string, 0, len(g.online))
	for name := range g.online {
		names = append(names, name)
	}
	return names[g.rng.Intn(len(names))]
}

func (g *Generator) pickOffline() string {
	var names []string
	for _, name := range playerNames {
		if !g.online[name] {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return names[g.rng.Intn(len(names))]
}
