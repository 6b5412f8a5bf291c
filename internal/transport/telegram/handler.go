package telegram

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	filterDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	filterService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/service"
	forwardService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/forward/service"
	messageDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	messageService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/service"
	routeDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/domain"
	routeService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/service"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/config"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Forwarder is the part of the bot API used to copy messages between chats
type Forwarder interface {
	ForwardMessage(ctx context.Context, params *bot.ForwardMessageParams) (*models.MessageID, error)
}

// Handler handles Telegram bot interactions
type Handler struct {
	cfg            *config.Config
	routeService   *routeService.Service
	filterService  *filterService.Service
	forwardService *forwardService.Service
	messageService *messageService.Service
}

// New creates a new Telegram handler
func New(cfg *config.Config, routeService *routeService.Service, filterService *filterService.Service, forwardService *forwardService.Service, messageService *messageService.Service) *Handler {
	return &Handler{
		cfg:            cfg,
		routeService:   routeService,
		filterService:  filterService,
		forwardService: forwardService,
		messageService: messageService,
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/addroute", bot.MatchTypePrefix, h.authorized(h.handleAddRoute))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/removeroute", bot.MatchTypePrefix, h.authorized(h.handleRemoveRoute))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/listroutes", bot.MatchTypeExact, h.authorized(h.handleListRoutes))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/setfilter", bot.MatchTypePrefix, h.authorized(h.handleSetFilter))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/showfilter", bot.MatchTypePrefix, h.authorized(h.handleShowFilter))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/deletefilter", bot.MatchTypePrefix, h.authorized(h.handleDeleteFilter))
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, h.authorized(h.handleStatus))
}

// HandleUpdate processes incoming updates
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.ChannelPost != nil:
		h.ProcessMessage(ctx, b, update.ChannelPost)
	case update.Message != nil:
		h.ProcessMessage(ctx, b, update.Message)
	}
}

// ProcessMessage forwards msg along every active route leaving its chat
// whose filter lets it through
func (h *Handler) ProcessMessage(ctx context.Context, f Forwarder, msg *models.Message) {
	if msg == nil {
		return
	}

	routes := h.routeService.RoutesForSource(msg.Chat.ID)
	if len(routes) == 0 {
		return
	}

	view := ToView(msg)
	for _, route := range routes {
		forward, err := h.forwardService.ShouldForward(ctx, route.FilterID, view)
		if err != nil {
			slog.Error("Error evaluating filter", "error", err, "route_id", route.ID, "filter_id", route.FilterID, "message_id", msg.ID)
			continue
		}
		if !forward {
			continue
		}

		if _, err := f.ForwardMessage(ctx, &bot.ForwardMessageParams{
			ChatID:     route.DestinationChatID,
			FromChatID: msg.Chat.ID,
			MessageID:  msg.ID,
		}); err != nil {
			slog.Error("Error forwarding message", "error", err, "route_id", route.ID, "message_id", msg.ID)
			continue
		}

		h.journal(route, msg, view)
		slog.Info("Message forwarded", "route_id", route.ID, "source", msg.Chat.ID, "destination", route.DestinationChatID, "message_id", msg.ID)
	}
}

func (h *Handler) journal(route *routeDomain.Route, msg *models.Message, view messageDomain.View) {
	now := time.Now()
	entry := &messageDomain.Message{
		ID:                int64(msg.ID),
		RouteID:           route.ID,
		SourceChatID:      msg.Chat.ID,
		DestinationChatID: route.DestinationChatID,
		FilterID:          route.FilterID,
		Label:             messageService.Classify(view),
		Text:              view.Text,
		Author:            getAuthorName(msg),
		Link:              messageLink(msg),
		Date:              time.Unix(int64(msg.Date), 0),
		ForwardedAt:       now,
	}
	if err := h.messageService.SaveMessage(entry); err != nil {
		slog.Error("Failed to journal forwarded message", "error", err, "route_id", route.ID, "message_id", msg.ID)
	}
	h.routeService.MarkForwarded(route, now)
}

func (h *Handler) authorized(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if err := h.checkAccess(update); err != nil {
			slog.Warn("Rejected admin command", "error", err)
			if update.Message != nil {
				reply(ctx, b, update, "❌ Unauthorized")
			}
			return
		}
		next(ctx, b, update)
	}
}

// checkAccess returns errors.ErrUnauthorized unless the update comes from an allowed user
func (h *Handler) checkAccess(update *models.Update) error {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return errors.ErrUnauthorized
	}
	if !h.cfg.IsAuthorized(update.Message.From.ID) {
		return oops.With("user_id", update.Message.From.ID, "chat_id", update.Message.Chat.ID).Wrap(errors.ErrUnauthorized)
	}
	return nil
}

func reply(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	}); err != nil {
		slog.Error("Failed to send reply", "error", err, "chat_id", update.Message.Chat.ID)
	}
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	text := `👋 Forwarding filter bot

I forward messages from source chats to destination chats when they pass a filter.

Available commands:
/help - Show this help message
/addroute <source> <destination> <filter_id> - Forward from source to destination
/removeroute <route_id> - Remove a route
/listroutes - List all routes
/setfilter <filter_id> <criterion> <value> - Change one filter criterion
/showfilter <filter_id> - Show a filter
/deletefilter <filter_id> - Delete a filter
/status - Show bot status

Criteria: ` + strings.Join(filterDomain.CriterionNames(), ", ") + `
Flags take on/off, contain and notcontain take comma-separated keywords.

Example:
/setfilter deals contain sale,discount`

	reply(ctx, b, update, text)
}

func (h *Handler) handleAddRoute(ctx context.Context, b *bot.Bot, update *models.Update) {
	parts := strings.Fields(update.Message.Text)
	if len(parts) < 4 {
		reply(ctx, b, update, "Usage: /addroute <source> <destination> <filter_id>\nExample: /addroute @news_channel -1001234567890 deals")
		return
	}

	source, err := resolveChat(ctx, b, parts[1])
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to get source chat info: %v\nMake sure the bot is a member of the chat.", err))
		return
	}
	destination, err := resolveChat(ctx, b, parts[2])
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to get destination chat info: %v", err))
		return
	}

	route, err := h.routeService.AddRoute(&routeDomain.Route{
		SourceChatID:      source.ID,
		SourceTitle:       source.Title,
		SourceUsername:    source.Username,
		DestinationChatID: destination.ID,
		FilterID:          parts[3],
		AddedBy:           update.Message.From.ID,
	})
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to save route: %v", err))
		return
	}

	text := fmt.Sprintf("✅ Route %s added: %s → %d with filter %s", route.ID, chatLabel(source), destination.ID, route.FilterID)
	if _, err := h.filterService.GetFilter(ctx, route.FilterID); stderrors.Is(err, errors.ErrFilterNotFound) {
		text += fmt.Sprintf("\n⚠️ Filter %s does not exist yet, nothing will be forwarded until it is set.", route.FilterID)
	}
	reply(ctx, b, update, text)
}

func (h *Handler) handleRemoveRoute(ctx context.Context, b *bot.Bot, update *models.Update) {
	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		reply(ctx, b, update, "Usage: /removeroute <route_id>")
		return
	}

	if err := h.routeService.RemoveRoute(parts[1]); err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to remove route: %v", err))
		return
	}
	reply(ctx, b, update, fmt.Sprintf("✅ Route %s removed successfully!", parts[1]))
}

func (h *Handler) handleListRoutes(ctx context.Context, b *bot.Bot, update *models.Update) {
	routes, err := h.routeService.GetAllRoutes()
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to list routes: %v", err))
		return
	}

	if len(routes) == 0 {
		reply(ctx, b, update, "📭 No routes added yet.\nUse /addroute to add one.")
		return
	}

	var text strings.Builder
	text.WriteString("📋 Routes:\n\n")
	for i, r := range routes {
		status := "✅"
		if !r.IsActive {
			status = "⏸️"
		}
		text.WriteString(fmt.Sprintf("%s %d. %s\n   From: %s (%d)\n   To: %d\n   Filter: %s\n\n",
			status, i+1, r.ID, r.SourceTitle, r.SourceChatID, r.DestinationChatID, r.FilterID))
	}
	reply(ctx, b, update, text.String())
}

func (h *Handler) handleSetFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	parts := strings.Fields(update.Message.Text)
	if len(parts) < 3 {
		reply(ctx, b, update, "Usage: /setfilter <filter_id> <criterion> <value>\nExample: /setfilter deals photo on")
		return
	}

	criterion, err := filterDomain.ParseCriterion(parts[2])
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Unknown criterion %q. Use one of: %s", parts[2], strings.Join(filterDomain.CriterionNames(), ", ")))
		return
	}

	value := strings.Join(parts[3:], " ")
	record, err := h.filterService.SetCriterion(ctx, parts[1], criterion, value)
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to update filter: %v", err))
		return
	}
	reply(ctx, b, update, "✅ Filter updated\n\n"+describeFilter(record))
}

func (h *Handler) handleShowFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		reply(ctx, b, update, "Usage: /showfilter <filter_id>")
		return
	}

	record, err := h.filterService.GetFilter(ctx, parts[1])
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Filter not found: %s", parts[1]))
		return
	}
	reply(ctx, b, update, describeFilter(record))
}

func (h *Handler) handleDeleteFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	parts := strings.Fields(update.Message.Text)
	if len(parts) < 2 {
		reply(ctx, b, update, "Usage: /deletefilter <filter_id>")
		return
	}

	if err := h.filterService.DeleteFilter(ctx, parts[1]); err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to delete filter: %v", err))
		return
	}
	reply(ctx, b, update, fmt.Sprintf("✅ Filter %s deleted", parts[1]))
}

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	routes, err := h.routeService.GetAllRoutes()
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to get status: %v", err))
		return
	}
	filters, err := h.filterService.GetAllFilters(ctx)
	if err != nil {
		reply(ctx, b, update, fmt.Sprintf("❌ Failed to get status: %v", err))
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	forwarded := lo.SumBy(routes, func(r *routeDomain.Route) int {
		messages, err := h.messageService.GetRecentMessages(r.ID, since)
		if err != nil {
			return 0
		}
		return len(messages)
	})
	active := lo.CountBy(routes, func(r *routeDomain.Route) bool {
		return r.IsActive
	})

	text := fmt.Sprintf(`📊 Bot Status:

Routes: %d (Active: %d)
Filters: %d
Forwarded in the last 24h: %d
Filter store: %s
HTTP Port: %s`,
		len(routes), active, len(filters), forwarded, h.cfg.Store.Driver, h.cfg.HTTPPort)

	reply(ctx, b, update, text)
}

// Helper functions
func resolveChat(ctx context.Context, b *bot.Bot, ref string) (*models.ChatFullInfo, error) {
	var chatID any = ref
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		chatID = id
	} else if !strings.HasPrefix(ref, "@") {
		chatID = "@" + ref
	}
	return b.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
}

func chatLabel(chat *models.ChatFullInfo) string {
	if chat.Username != "" {
		return "@" + chat.Username
	}
	if chat.Title != "" {
		return chat.Title
	}
	return strconv.FormatInt(chat.ID, 10)
}

func describeFilter(record *filterDomain.Record) string {
	var text strings.Builder
	text.WriteString(fmt.Sprintf("🔎 Filter %s\n", record.ID))
	if active, err := filterService.ActiveCriteria(record); err == nil {
		names := lo.Map(active.Criteria(), func(c filterDomain.Criterion, _ int) string { return c.String() })
		if len(names) == 0 {
			names = []string{"none"}
		}
		text.WriteString(fmt.Sprintf("active: %s\n\n", strings.Join(names, ", ")))
	}
	for _, name := range filterDomain.CriterionNames() {
		c := filterDomain.Criterion(name)
		switch {
		case c == filterDomain.CriterionContain || c == filterDomain.CriterionNotcontain:
			keywords := record.Keywords(c)
			if len(keywords) == 0 {
				text.WriteString(fmt.Sprintf("%s: -\n", name))
			} else {
				text.WriteString(fmt.Sprintf("%s: %s\n", name, strings.Join(keywords, ", ")))
			}
		case record.IsActive(c):
			text.WriteString(fmt.Sprintf("%s: on\n", name))
		default:
			text.WriteString(fmt.Sprintf("%s: off\n", name))
		}
	}
	return text.String()
}

func getAuthorName(msg *models.Message) string {
	if msg.From != nil {
		if msg.From.Username != "" {
			return "@" + msg.From.Username
		}
		if msg.From.FirstName != "" {
			return msg.From.FirstName
		}
	}
	if msg.AuthorSignature != "" {
		return msg.AuthorSignature
	}
	if msg.SenderChat != nil && msg.SenderChat.Title != "" {
		return msg.SenderChat.Title
	}
	return "Unknown"
}

func messageLink(msg *models.Message) string {
	if msg.Chat.Username == "" {
		return ""
	}
	return fmt.Sprintf("https://t.me/%s/%d", msg.Chat.Username, msg.ID)
}
