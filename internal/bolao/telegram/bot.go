// Package telegram connects the pool to a Telegram group: it long-polls
// updates, routes commands and hands every other text to the intake.
package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gustavomchagas/chuta/internal/bolao/intake"
	"github.com/gustavomchagas/chuta/internal/bolao/replies"
	"github.com/gustavomchagas/chuta/internal/bolao/rounds"
	"github.com/gustavomchagas/chuta/internal/pkg/config"
	"github.com/gustavomchagas/chuta/internal/pkg/models"
)

const myBetsLimit = 10

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Intake is the bet pipeline behind the bot.
type Intake interface {
	HandleMessage(ctx context.Context, msg intake.Message) (intake.Outcome, error)
	OpenWindow(ctx context.Context) (rounds.Window, error)
	PlayerBets(ctx context.Context, handle string, limit int) (*models.Player, string, []replies.PlayerBet, error)
	Location() *time.Location
}

// Replier queues outgoing chat messages.
type Replier interface {
	Reply(ctx context.Context, chatID int64, replyTo int, text string) error
}

type Bot struct {
	api     API
	intake  Intake
	replier Replier
	session *Session
	cfg     config.TelegramConfig
	logger  *slog.Logger
}

func NewBot(api API, in Intake, replier Replier, session *Session, cfg config.TelegramConfig, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	if session == nil {
		session = NewSession(cfg.GroupID)
	}
	return &Bot{api: api, intake: in, replier: replier, session: session, cfg: cfg, logger: logger}
}

// Run polls updates until ctx is cancelled, handling at most cfg.Workers of
// them at a time, and waits for in-flight handlers before returning.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	workers := b.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	defer wg.Wait()

	b.logger.Info("Telegram bot started", "group_id", b.session.GroupID(), "workers", workers)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Telegram bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				continue
			}
			wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer wg.Done()
				defer func() { <-sem }()
				b.HandleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

// HandleMessage routes one inbound message.
func (b *Bot) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.From == nil || msg.From.IsBot {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if cmd, ok := ParseCommand(text); ok {
		b.handleCommand(ctx, cmd, msg)
		return
	}

	if !b.acceptsBets(msg.Chat) {
		return
	}

	out, err := b.intake.HandleMessage(ctx, intake.Message{
		Key:        strconv.FormatInt(msg.Chat.ID, 10) + ":" + strconv.Itoa(msg.MessageID),
		Handle:     strconv.FormatInt(msg.From.ID, 10),
		SenderName: SenderName(msg.From),
		Text:       text,
	})
	if err != nil {
		b.logger.Error("Failed to handle bets", "chat_id", msg.Chat.ID, "message_id", msg.MessageID, "error", err)
	}
	b.reply(ctx, msg, out.Reply)
}

func (b *Bot) handleCommand(ctx context.Context, cmd Command, msg *tgbotapi.Message) {
	b.logger.Info("Command received", "command", cmd, "chat_id", msg.Chat.ID, "user_id", msg.From.ID)

	switch cmd {
	case CmdHelp:
		b.reply(ctx, msg, replies.Help)
	case CmdRules:
		b.reply(ctx, msg, replies.Rules)
	case CmdSetupGroup:
		if !isGroup(msg.Chat) {
			b.reply(ctx, msg, replies.GroupOnly)
			return
		}
		if b.session.Configure(msg.Chat.ID) {
			b.logger.Info("Bets group configured", "chat_id", msg.Chat.ID, "title", msg.Chat.Title)
		}
		b.reply(ctx, msg, replies.GroupConfigured)
	case CmdOpenMatches:
		w, err := b.intake.OpenWindow(ctx)
		if err != nil {
			b.logger.Error("Failed to load open matches", "error", err)
			b.reply(ctx, msg, replies.InternalError)
			return
		}
		b.reply(ctx, msg, replies.OpenMatches(w, b.intake.Location()))
		if !w.Empty() {
			b.send(ctx, msg.Chat.ID, replies.CopyList(w))
		}
	case CmdMyBets:
		player, name, bets, err := b.intake.PlayerBets(ctx, strconv.FormatInt(msg.From.ID, 10), myBetsLimit)
		if err != nil {
			b.logger.Error("Failed to load player bets", "user_id", msg.From.ID, "error", err)
			b.reply(ctx, msg, replies.InternalError)
			return
		}
		b.reply(ctx, msg, replies.PlayerBets(player, name, bets))
	}
}

func (b *Bot) acceptsBets(chat *tgbotapi.Chat) bool {
	if chat == nil {
		return false
	}
	if chat.IsPrivate() {
		return b.cfg.AllowPrivate
	}
	return b.session.IsBetsGroup(chat.ID)
}

func (b *Bot) reply(ctx context.Context, msg *tgbotapi.Message, text string) {
	if text == "" {
		return
	}
	if err := b.replier.Reply(ctx, msg.Chat.ID, msg.MessageID, text); err != nil {
		b.logger.Warn("Failed to queue reply", "chat_id", msg.Chat.ID, "error", err)
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if err := b.replier.Reply(ctx, chatID, 0, text); err != nil {
		b.logger.Warn("Failed to queue message", "chat_id", chatID, "error", err)
	}
}

// SenderName is the user's full name, falling back to the username.
func SenderName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}

func isGroup(chat *tgbotapi.Chat) bool {
	return chat != nil && (chat.IsGroup() || chat.IsSuperGroup())
}
