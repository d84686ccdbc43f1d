// Package rcon queries the game server's online player list over its
// remote console protocol.
package rcon

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gorcon/rcon"

	"github.com/craftwatch/craftwatch/internal/config"
)

// listCommand asks the server for its connected players. The reply looks
// like "There are 2 of a max of 20 players online: Alice, Bob" (the name
// list may be empty).
const listCommand = "list"

// listMarker separates the player-count preamble from the name list.
const listMarker = "online:"

const dialTimeout = 5 * time.Second

// Client issues player-list queries. Queries are infrequent, so each call
// opens a fresh connection and closes it again rather than keeping a
// console session alive between polls.
type Client struct {
	addr     string
	password string
}

func NewClient(cfg config.RCONConfig) *Client {
	return &Client{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		password: cfg.Password,
	}
}

// ListPlayers connects, runs the list command, and parses the response
// into a set of player names. Connection and command failures are
// returned as errors (they feed the watcher's failure escalation); a
// reachable server answering in an unrecognized shape yields an empty
// set with a warning instead, since the server itself is evidently fine.
func (c *Client) ListPlayers() (map[string]bool, error) {
	conn, err := rcon.Dial(c.addr, c.password,
		rcon.SetDialTimeout(dialTimeout),
		rcon.SetDeadline(dialTimeout))
	if err != nil {
		return nil, fmt.Errorf("rcon dial %s: %w", c.addr, err)
	}
	defer conn.Close()

	resp, err := conn.Execute(listCommand)
	if err != nil {
		return nil, fmt.Errorf("rcon %s: %w", listCommand, err)
	}
	return ParseList(resp), nil
}

// ParseList extracts the player set from a list-command response.
// Everything after the marker, split on commas, trimmed, with empty
// tokens discarded. A response without the marker logs a warning and
// parses as empty.
func ParseList(resp string) map[string]bool {
	players := make(map[string]bool)

	i := strings.Index(resp, listMarker)
	if i < 0 {
		log.Printf("[rcon] unexpected response format: %q", resp)
		return players
	}

	for _, name := range strings.Split(resp[i+len(listMarker):], ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			players[name] = true
		}
	}
	return players
}
