package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"grocery-planner/internal/app"
	"grocery-planner/internal/config"
	"grocery-planner/internal/store"
)

const (
	maxPlanDays    = 14
	topDealsShown  = 10
	commandTimeout = 2 * time.Minute
)

// reply is one outgoing message, built without touching the Telegram API.
type reply struct {
	Text     string
	Keyboard *tgbotapi.InlineKeyboardMarkup
}

// Bot wraps the Telegram API around the application.
type Bot struct {
	api *tgbotapi.BotAPI
	app *app.App
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, a *app.App) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: api, app: a, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if !b.cfg.IsAllowedUser(update.CallbackQuery.From.ID) {
			return
		}
		go b.processCallback(update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !b.cfg.IsAllowedUser(update.Message.From.ID) {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd, _ := parseCommand(msg.Text)
	if cmd == "plan" || cmd == "fetch" {
		status := tgbotapi.NewMessage(msg.Chat.ID, "🧑‍🍳 *Working on it...*")
		status.ParseMode = tgbotapi.ModeMarkdown
		sent, err := b.api.Send(status)
		if err != nil {
			log.Printf("Failed to send initial reply: %v", err)
			return
		}
		r := b.respond(ctx, msg.From.ID, msg.Text)
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, r.Text)
		edit.ParseMode = tgbotapi.ModeMarkdown
		edit.ReplyMarkup = r.Keyboard
		b.send(edit)
		return
	}

	r := b.respond(ctx, msg.From.ID, msg.Text)
	out := tgbotapi.NewMessage(msg.Chat.ID, r.Text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if r.Keyboard != nil {
		out.ReplyMarkup = *r.Keyboard
	}
	b.send(out)
}

func (b *Bot) processCallback(query *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	// Answer callback to remove spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("Warning: failed to answer callback: %v", err)
	}
	if query.Message == nil {
		return
	}

	r := b.respondCallback(ctx, query.Data)
	out := tgbotapi.NewMessage(query.Message.Chat.ID, r.Text)
	out.ParseMode = tgbotapi.ModeMarkdown
	b.send(out)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// respond runs a chat command for a user and builds the answer.
func (b *Bot) respond(ctx context.Context, from int64, text string) reply {
	userID := strconv.FormatInt(from, 10)
	cmd, args := parseCommand(text)

	switch cmd {
	case "plan":
		return b.planReply(ctx, userID, args)
	case "list":
		return b.listReply(ctx, userID)
	case "deals":
		return b.dealsReply(ctx, userID)
	case "stores":
		return b.storesReply(ctx, userID, args)
	case "metrics":
		if !b.isAdmin(from) {
			return reply{Text: "⛔ *Access Denied*: Admin only."}
		}
		return b.metricsReply(ctx)
	case "fetch":
		if !b.isAdmin(from) {
			return reply{Text: "⛔ *Access Denied*: Admin only."}
		}
		return b.fetchReply(ctx)
	default:
		return reply{Text: helpText}
	}
}

// respondCallback handles the inline buttons attached to a plan.
func (b *Bot) respondCallback(ctx context.Context, data string) reply {
	action, planID, ok := strings.Cut(data, "|")
	if !ok || planID == "" {
		return reply{Text: "❌ Unknown action."}
	}

	switch action {
	case "list":
		list, err := b.app.ShoppingList(ctx, planID)
		if err != nil {
			return errorReply("loading shopping list", err)
		}
		if list == nil {
			return reply{Text: "No shopping list for that plan."}
		}
		return reply{Text: formatShoppingListMarkdown(list.List)}
	case "news":
		stored, err := b.app.GetPlan(ctx, planID)
		if err != nil {
			return errorReply("loading plan", err)
		}
		if stored == nil {
			return reply{Text: "That plan no longer exists."}
		}
		n, _, err := b.app.WriteNewsletter(ctx, stored.Plan, false)
		if err != nil {
			return errorReply("writing newsletter", err)
		}
		return reply{Text: fmt.Sprintf("📰 *%s*\n\n%s", escapeMarkdown(n.Subject), escapeMarkdown(n.Body))}
	default:
		return reply{Text: "❌ Unknown action."}
	}
}

func (b *Bot) planReply(ctx context.Context, userID string, args []string) reply {
	prefs, err := b.app.PreferencesFor(ctx, userID)
	if err != nil {
		return errorReply("loading preferences", err)
	}

	opts := b.app.PlanOptions()
	if len(args) > 0 {
		days, err := strconv.Atoi(args[0])
		if err != nil || days < 1 || days > maxPlanDays {
			return reply{Text: fmt.Sprintf("Usage: /plan [days], with days between 1 and %d.", maxPlanDays)}
		}
		opts.PlanDays = days
	}

	plan, err := b.app.GeneratePlan(ctx, prefs, opts)
	if err != nil {
		log.Printf("Error generating plan for %s: %v", userID, err)
		b.sendAdminAlert(fmt.Sprintf("⚠️ *Plan generation failed*\nUser: %s\n%s", userID, escapeMarkdown(err.Error())))
		return errorReply("generating plan", err)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Shopping List", "list|"+plan.ID),
			tgbotapi.NewInlineKeyboardButtonData("📰 Newsletter", "news|"+plan.ID),
		),
	)
	return reply{Text: formatPlanMarkdown(plan), Keyboard: &keyboard}
}

func (b *Bot) listReply(ctx context.Context, userID string) reply {
	latest, err := b.app.LatestPlan(ctx, userID)
	if err != nil {
		return errorReply("loading plan", err)
	}
	if latest == nil {
		return reply{Text: "No plan yet. Send /plan first."}
	}

	list, err := b.app.ShoppingList(ctx, latest.ID)
	if err != nil {
		return errorReply("loading shopping list", err)
	}
	if list == nil {
		return reply{Text: formatShoppingListMarkdown(latest.Plan.ShoppingList)}
	}
	return reply{Text: formatShoppingListMarkdown(list.List)}
}

func (b *Bot) dealsReply(ctx context.Context, userID string) reply {
	prefs, err := b.app.PreferencesFor(ctx, userID)
	if err != nil {
		return errorReply("loading preferences", err)
	}
	return reply{Text: formatDealsMarkdown(b.app.Deals().Active(prefs.SelectedStores), topDealsShown)}
}

func (b *Bot) storesReply(ctx context.Context, userID string, args []string) reply {
	prefs, err := b.app.PreferencesFor(ctx, userID)
	if err != nil {
		return errorReply("loading preferences", err)
	}

	if len(args) == 0 {
		return reply{Text: formatStoresMarkdown(prefs.SelectedStores)}
	}

	var ids []string
	for _, arg := range args {
		for _, id := range strings.Split(arg, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := store.GetStoreByID(id); !ok {
				return reply{Text: fmt.Sprintf("❌ Unknown store `%s`. Send /stores to see the list.", id)}
			}
			ids = append(ids, id)
		}
	}

	prefs.SelectedStores = ids
	if err := b.app.SavePreferences(ctx, prefs); err != nil {
		return errorReply("saving preferences", err)
	}
	return reply{Text: "✅ Stores saved.\n\n" + formatStoresMarkdown(ids)}
}

func (b *Bot) metricsReply(ctx context.Context) reply {
	usage, err := b.app.Usage(ctx, 7)
	if err != nil {
		return errorReply("fetching metrics", err)
	}
	return reply{Text: formatUsageMarkdown(usage, b.app.Health())}
}

func (b *Bot) fetchReply(ctx context.Context) reply {
	res, err := b.app.FetchDeals(ctx, nil)
	if err != nil {
		b.sendAdminAlert(fmt.Sprintf("⚠️ *Deal fetch failed*\n%s", escapeMarkdown(err.Error())))
		return errorReply("fetching deals", err)
	}
	return reply{Text: fmt.Sprintf("✅ Fetched %d deals from %d stores (%s, %s).",
		len(res.Deals), res.StoreCount, res.Source, res.WeekOf)}
}

func (b *Bot) isAdmin(id int64) bool {
	return b.cfg.AdminTelegramID != 0 && id == b.cfg.AdminTelegramID
}

func (b *Bot) sendAdminAlert(text string) {
	if b.api == nil || b.cfg.AdminTelegramID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(b.cfg.AdminTelegramID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}

func errorReply(action string, err error) reply {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	return reply{Text: fmt.Sprintf("❌ *Error %s:*\n```\n%s\n```", action, safeErr)}
}

// parseCommand splits "/plan@bot 3" into ("plan", ["3"]).
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}
	cmd := strings.TrimPrefix(fields[0], "/")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), fields[1:]
}
