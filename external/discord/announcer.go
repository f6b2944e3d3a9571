package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/speedkit/splitvault/internal/notify"
)

// Announcer posts an import summary to a fixed channel. It only needs the
// REST surface, so the session is never opened as a gateway connection.
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

func NewAnnouncer(token, channelID string) (*Announcer, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &Announcer{session: s, channelID: channelID}, nil
}

func (a *Announcer) AnnounceImport(ctx context.Context, ann notify.ImportAnnouncement) error {
	_, err := a.session.ChannelMessageSend(a.channelID, formatAnnouncement(ann), discordgo.WithContext(ctx))
	return err
}

func formatAnnouncement(ann notify.ImportAnnouncement) string {
	lines := []string{
		fmt.Sprintf(":checkered_flag: **%s — %s** imported", ann.GameName, ann.CategoryName),
		fmt.Sprintf("-# %d segments, %d recorded attempts", ann.SegmentCount, ann.AttemptCount),
	}
	if ann.SourcePath != "" {
		lines = append(lines, fmt.Sprintf("-# from `%s`", ann.SourcePath))
	}
	return strings.Join(lines, "\n")
}
