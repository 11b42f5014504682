package bot

import (
	"fmt"
	"strings"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	"gopkg.in/telebot.v4"
)

const startMessage = `Hello! I track the Arc'teryx outlet.

/subscribe — get notified about new products and price drops
/unsubscribe — stop notifications`

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	if err := ctx.Send(startMessage); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// subscribeHandler process command /subscribe.
func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	chatID := ctx.Chat().ID

	if err := b.subs.SubscribeChat(b.ctx, chatID); err != nil {
		b.log.Error("Failed to subscribe chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to subscribe chat %d: %w", chatID, err)
	}

	b.log.Info("Chat subscribed", "chat_id", chatID)

	if err := ctx.Send("Subscribed. You will be notified about new products and price drops."); err != nil {
		return fmt.Errorf("failed to send subscribe confirmation: %w", err)
	}

	return nil
}

// unsubscribeHandler process command /unsubscribe.
func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	chatID := ctx.Chat().ID

	if err := b.subs.UnsubscribeChat(b.ctx, chatID); err != nil {
		b.log.Error("Failed to unsubscribe chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to unsubscribe chat %d: %w", chatID, err)
	}

	b.log.Info("Chat unsubscribed", "chat_id", chatID)

	if err := ctx.Send("Unsubscribed. No more notifications."); err != nil {
		return fmt.Errorf("failed to send unsubscribe confirmation: %w", err)
	}

	return nil
}

// formatChanges renders the notification digest. Removed products are not
// part of the digest; they never trigger a notification on their own.
func formatChanges(changes *models.InventoryChanges) string {
	var sb strings.Builder

	sb.WriteString("🏔 *Arc'teryx Outlet update*\n")

	if len(changes.NewProducts) > 0 {
		fmt.Fprintf(&sb, "\n*New products (%d)*\n", len(changes.NewProducts))
		for _, p := range changes.NewProducts {
			sb.WriteString(formatProductLine(p))
		}
	}

	if len(changes.PriceDrops) > 0 {
		fmt.Fprintf(&sb, "\n*Price drops (%d)*\n", len(changes.PriceDrops))
		for _, drop := range changes.PriceDrops {
			fmt.Fprintf(&sb, "• [%s](%s) — $%.2f (was $%.2f)%s\n",
				drop.Name, drop.URL, drop.Price, drop.PreviousPrice, formatSizes(drop.Sizes))
		}
	}

	return sb.String()
}

func formatProductLine(p models.Product) string {
	line := fmt.Sprintf("• [%s](%s) — $%.2f", p.Name, p.URL, p.Price)

	if p.Discount > 0 {
		line += fmt.Sprintf(" (was $%.2f, -%d%%)", p.OriginalPrice, p.Discount)
	}

	return line + formatSizes(p.Sizes) + "\n"
}

func formatSizes(labels []string) string {
	if len(labels) == 0 {
		return ""
	}

	return " | sizes: " + strings.Join(labels, ", ")
}
