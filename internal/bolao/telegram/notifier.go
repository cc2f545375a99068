package telegram

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const queueSize = 100

var (
	ErrQueueFull       = errors.New("message queue is full")
	ErrNotifierStopped = errors.New("notifier stopped")
)

// Sender is the part of the Bot API used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type outgoing struct {
	chatID  int64
	replyTo int
	text    string
	queued  time.Time
}

// Notifier delivers replies from a single goroutine, spacing sends so the bot
// stays under Telegram's flood limits.
type Notifier struct {
	api     Sender
	limiter *rate.Limiter
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan outgoing
	wg     sync.WaitGroup
}

// NewNotifier starts the sender goroutine. interval <= 0 disables spacing.
func NewNotifier(api Sender, interval time.Duration, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	n := &Notifier{
		api:     api,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		queue:   make(chan outgoing, queueSize),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Reply queues text for chatID, quoting replyTo when it is non-zero. It never
// blocks on a full queue.
func (n *Notifier) Reply(ctx context.Context, chatID int64, replyTo int, text string) error {
	if text == "" {
		return nil
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNotifierStopped
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case n.queue <- outgoing{chatID: chatID, replyTo: replyTo, text: text, queued: time.Now()}:
		return nil
	default:
		n.logger.Warn("Telegram send: queue full, dropping", "chat_id", chatID)
		return ErrQueueFull
	}
}

// QueueLen returns the number of messages waiting to be sent.
func (n *Notifier) QueueLen() int {
	return len(n.queue)
}

// Stop sends what is already queued and waits for the sender to exit.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()
	n.wg.Wait()
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for msg := range n.queue {
		if err := n.limiter.Wait(context.Background()); err != nil {
			n.logger.Error("Telegram send: rate limiter failed", "error", err)
			continue
		}
		n.send(msg)
	}
}

func (n *Notifier) send(msg outgoing) {
	tgMsg := tgbotapi.NewMessage(msg.chatID, msg.text)
	tgMsg.ParseMode = tgbotapi.ModeMarkdown
	tgMsg.ReplyToMessageID = msg.replyTo

	start := time.Now()
	_, err := n.api.Send(tgMsg)
	if err != nil {
		// names typed by players can break legacy Markdown; retry as plain text
		n.logger.Warn("Telegram send: markdown rejected, retrying plain", "chat_id", msg.chatID, "error", err)
		tgMsg.ParseMode = ""
		_, err = n.api.Send(tgMsg)
	}
	if err != nil {
		n.logger.Error("Telegram send: failed", "chat_id", msg.chatID, "error", err)
		return
	}
	n.logger.Debug("Telegram send: success",
		"chat_id", msg.chatID,
		"queue_wait", start.Sub(msg.queued),
		"send_duration", time.Since(start),
		"queue_length", len(n.queue),
	)
}
