package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Discord posts notifications to a single channel. The channel is
// resolved once at construction; an unresolvable channel is a fatal
// startup error, not something to retry tick after tick.
type Discord struct {
	session   *discordgo.Session
	channelID string
	name      string
}

func NewDiscord(token, channelID string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}

	channel, err := session.Channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("resolve discord channel %s: %w", channelID, err)
	}

	return &Discord{
		session:   session,
		channelID: channelID,
		name:      channel.Name,
	}, nil
}

// ChannelName returns the resolved channel's display name, for logs.
func (d *Discord) ChannelName() string {
	return d.name
}

func (d *Discord) Send(text string) error {
	_, err := d.session.ChannelMessageSend(d.channelID, text)
	return err
}

func (d *Discord) Close() error {
	return d.session.Close()
}
