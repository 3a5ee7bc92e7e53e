package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dev-journal/internal/app"
	"dev-journal/internal/config"
	"dev-journal/internal/journal"
	"dev-journal/internal/metrics"
)

// botAPI is the part of *tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// Bot exposes the journal over a Telegram webhook to a single allowed user.
type Bot struct {
	api botAPI
	app *app.App
	cfg *config.Config
	now func() time.Time

	wg sync.WaitGroup
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, a *app.App) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	if webhookURL := cfg.TelegramWebhookURL; webhookURL != "" {
		wh, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			return nil, fmt.Errorf("invalid webhook url %s: %w", webhookURL, err)
		}
		resp, err := bot.Request(wh)
		if err != nil {
			return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
		}
		log.Printf("Webhook set response: %s", resp.Description)
	}

	return newBot(bot, cfg, a), nil
}

func newBot(api botAPI, cfg *config.Config, a *app.App) *Bot {
	return &Bot{api: api, app: a, cfg: cfg, now: time.Now}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Wait blocks until in-flight messages are handled.
func (b *Bot) Wait() {
	b.wg.Wait()
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if msg.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", msg.From.ID, msg.From.UserName)
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.processMessage(msg)
	}()
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reply := b.handleCommand(ctx, msg)
	if _, err := b.api.Send(reply); err != nil {
		log.Printf("Failed to send reply: %v", err)
	}
}

const helpText = `📓 Dev Journal

/week - show the week
/plan <day> <text> - set the planner goal
/goal <day> <text> - set the daily goal
/log <day> <text> - add a line to the daily log
/done <day> - mark the day completed
/suggest <day> - suggest action items for the day
/summarize - write the retro summary
/export <day> - get the day's log as a file
/metrics - assistant usage and health`

// handleCommand runs one command and builds the reply.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) tgbotapi.Chattable {
	chatID := msg.Chat.ID
	text := func(s string) tgbotapi.Chattable { return tgbotapi.NewMessage(chatID, s) }

	if !msg.IsCommand() {
		return text(helpText)
	}

	s := b.app.Session()
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		return text(helpText)

	case "week":
		return text(formatWeek(s.Week()))

	case "plan", "goal", "log":
		day, rest, err := splitDay(args)
		if err != nil || rest == "" {
			return text(fmt.Sprintf("Usage: /%s <day> <text>", msg.Command()))
		}
		var action journal.Action
		switch msg.Command() {
		case "plan":
			action = journal.SetPlanner{Day: day, Field: journal.PlannerGoal, Value: rest}
		case "goal":
			action = journal.SetDaily{Day: day, Field: journal.DailyGoal, Value: rest}
		default:
			action = journal.AppendDailyLine{Day: day, Field: journal.DailyLog, Line: rest}
		}
		s.Dispatch(action)
		return text(fmt.Sprintf("✅ Saved for %s.", day))

	case "done":
		day, _, err := splitDay(args)
		if err != nil {
			return text("Usage: /done <day>")
		}
		w := s.Dispatch(journal.SetCompleted{Day: day, Completed: true})
		return text(fmt.Sprintf("✅ %s completed (%d/%d).", day, w.CompletedDays(), journal.NumDays))

	case "suggest":
		day, _, err := splitDay(args)
		if err != nil {
			return text("Usage: /suggest <day>")
		}
		out, err := s.SuggestDailyActions(ctx, day)
		if problem := outcomeProblem(out, err, fmt.Sprintf("Set a goal for %s first with /goal.", day)); problem != "" {
			return text(problem)
		}
		return text(fmt.Sprintf("💡 %s log:\n\n%s", day, out.Week.Daily[day].Log))

	case "summarize":
		out, err := s.SummarizeWeek(ctx)
		if err != nil {
			return text(outcomeProblem(out, err, ""))
		}
		r := out.Week.Retro
		reply := fmt.Sprintf("📝 Summary\n%s\n\n🎯 Actions\n%s", r.Summary, r.Actions)
		if out.Fallback() {
			reply = "⚠️ Assistant unavailable.\n\n" + reply
		}
		return text(reply)

	case "export":
		day, _, err := splitDay(args)
		if err != nil {
			return text("Usage: /export <day>")
		}
		now := b.now()
		content := journal.ExportDaily(day, s.Week().DailyFor(day), now)
		return tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  journal.ExportFilename(day, now),
			Bytes: []byte(content),
		})

	case "metrics":
		return text(b.metricsReport(ctx))

	default:
		return text("Unknown command.\n\n" + helpText)
	}
}

// outcomeProblem describes a skipped, failed or fallback suggestion, or returns "".
func outcomeProblem(out app.Outcome, err error, skipped string) string {
	switch {
	case errors.Is(err, app.ErrBusy):
		return "⏳ Already working on that."
	case err != nil:
		return "❌ " + err.Error()
	case out.Skipped:
		return skipped
	case out.Fallback():
		return "⚠️ Assistant unavailable, nothing was added."
	}
	return ""
}

func splitDay(args string) (journal.Day, string, error) {
	name, rest, _ := strings.Cut(args, " ")
	day, err := journal.ParseDay(name)
	if err != nil {
		return 0, "", err
	}
	return day, strings.TrimSpace(rest), nil
}

func formatWeek(w journal.Week) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 Week (%d/%d completed)\n", w.CompletedDays(), journal.NumDays))
	for _, d := range journal.Days() {
		mark := "⬜"
		if w.Daily[d].Completed {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("\n%s %s\n", mark, d))
		if g := w.Planner[d].Goal; g != "" {
			sb.WriteString(fmt.Sprintf("Plan: %s\n", g))
		}
		if g := w.Daily[d].Goal; g != "" {
			sb.WriteString(fmt.Sprintf("Goal: %s\n", g))
		}
	}
	if w.Retro.Summary != "" {
		sb.WriteString(fmt.Sprintf("\n📝 %s\n", w.Retro.Summary))
	}
	return sb.String()
}

func (b *Bot) metricsReport(ctx context.Context) string {
	var sb strings.Builder
	sb.WriteString("📊 Usage & Health Report\n\n")

	sb.WriteString("🗓 Recent assistant activity\n")
	usage, err := b.app.Metrics().GetDailyUsage(ctx, 7)
	if err != nil {
		log.Printf("Error fetching metrics: %v", err)
		sb.WriteString("❌ Error fetching metrics.\n")
	} else if len(usage) == 0 {
		sb.WriteString("No data yet\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• %s: %d tokens (%d calls, %d fallbacks)\n",
			d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution, d.Fallbacks))
	}

	health := metrics.GetSysHealth(b.cfg.DataDir)
	sb.WriteString("\n🧠 System Health\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	return sb.String()
}
