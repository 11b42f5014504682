// Package bot is the notification sink: a Telegram bot that manages chat
// subscriptions and broadcasts inventory digests and failure alerts.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/repository/sqlite"
	"gopkg.in/telebot.v4"
)

// Bot contains the bot API instance, subscription storage and the failure
// alert throttle state. ctx is the application lifecycle context; command
// handlers use it for their storage calls so shutdown cancels them too.
type Bot struct {
	bot           API
	ctx           context.Context
	log           *slog.Logger
	subs          sqlite.SubscriptionRepository
	alertInterval time.Duration
	now           func() time.Time

	mu        sync.Mutex
	lastAlert time.Time
}

// NewBot authorizes against the Telegram API and registers the command
// routes. alertInterval throttles failure alerts to at most one per
// interval.
func NewBot(
	ctx context.Context,
	log *slog.Logger,
	token string,
	poller time.Duration,
	subs sqlite.SubscriptionRepository,
	alertInterval time.Duration,
) (*Bot, error) {
	tgBot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", tgBot.Me.Username)

	botInstance := &Bot{
		bot:           tgBot,
		ctx:           ctx,
		log:           log,
		subs:          subs,
		alertInterval: alertInterval,
		now:           time.Now,
	}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/subscribe", b.subscribeHandler)
	b.bot.Handle("/unsubscribe", b.unsubscribeHandler)
}

// NotifyChanges renders the change digest and broadcasts it to every
// subscribed chat. Per-chat send failures are aggregated so one broken
// chat does not mute the rest.
func (b *Bot) NotifyChanges(ctx context.Context, changes *models.InventoryChanges) error {
	const opn = "bot.NotifyChanges"

	message := formatChanges(changes)

	return b.broadcast(ctx, opn, message)
}

// AlertFailure notifies subscribers that a run failed. Alerts are
// throttled to at most one per alertInterval so a persistently broken
// source does not flood every chat. The throttle window is only consumed
// by a broadcast that actually went out; a failed delivery leaves the
// next run free to alert again.
func (b *Bot) AlertFailure(ctx context.Context, runErr error) error {
	const opn = "bot.AlertFailure"

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.lastAlert.IsZero() && b.now().Sub(b.lastAlert) < b.alertInterval {
		b.log.DebugContext(ctx, "Failure alert suppressed by throttle", "op", opn, "error", runErr)
		return nil
	}

	message := fmt.Sprintf("⚠️ Outlet check failed: %v", runErr)

	if err := b.broadcast(ctx, opn, message); err != nil {
		return err
	}

	b.lastAlert = b.now()

	return nil
}

func (b *Bot) broadcast(ctx context.Context, opn, message string) error {
	chatIDs, err := b.subs.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribed chats: %w", opn, err)
	}

	if len(chatIDs) == 0 {
		b.log.InfoContext(ctx, "No subscribed chats, nothing to send", "op", opn)
		return nil
	}

	var sendErrs []error
	for _, chatID := range chatIDs {
		if _, err = b.bot.Send(telebot.ChatID(chatID), message, telebot.ModeMarkdown); err != nil {
			b.log.ErrorContext(ctx, "Failed to send message", "op", opn, "chat_id", chatID, "error", err)
			sendErrs = append(sendErrs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}

	if len(sendErrs) > 0 {
		return fmt.Errorf("%s: %w", opn, errors.Join(sendErrs...))
	}

	b.log.InfoContext(ctx, "Broadcast sent", "op", opn, "chats", len(chatIDs))

	return nil
}
