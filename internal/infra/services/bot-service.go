package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"hrbot-connector/internal/config"
	"hrbot-connector/internal/domain/entities"
	"hrbot-connector/internal/infra/dispatch"
	"hrbot-connector/internal/infra/logger"
	"hrbot-connector/internal/infra/notifier"
	"hrbot-connector/internal/infra/provider"
)

// Config carries the bot's timing tunables.
type Config struct {
	// InactivityTimeout is how long a quiet conversation stays open before
	// the closing message is sent.
	InactivityTimeout time.Duration
	// TopicForwardDelay is the pause between a completed holerite session
	// (text + image received) and the automatic escalation. Short on purpose:
	// it should feel responsive, not like the bot is waiting for more input.
	TopicForwardDelay time.Duration
	// MenuContextTTL bounds how long the last-menu hint stays usable for
	// context rescue.
	MenuContextTTL time.Duration
}

// ConfigFromEnv reads the tunables with their production defaults.
func ConfigFromEnv() Config {
	return Config{
		InactivityTimeout: config.GetEnvDuration("INACTIVITY_TIMEOUT", 3*time.Minute),
		TopicForwardDelay: config.GetEnvDuration("TOPIC_FORWARD_DELAY", 3*time.Second),
		MenuContextTTL:    config.GetEnvDuration("MENU_CONTEXT_TTL", 5*time.Minute),
	}
}

// BotService is the conversation state machine. Inbound events, timer fires
// and admin mutations all run under one mutex, so every transition updates
// state, timers and queue membership as a single unit.
type BotService struct {
	mu sync.Mutex

	Logger   *logger.Logger
	Provider provider.IWhatsAppProvider
	Dispatch *dispatch.Queue
	Notifier notifier.INotifier

	Store  *SessionStore
	Queue  *HandoverQueue
	Timers *TimerRegistry
	Convos *ConversationLog
	Feed   *Feed

	cfg Config
}

func NewBotService(
	log *logger.Logger,
	whatsAppProvider provider.IWhatsAppProvider,
	dispatchQueue *dispatch.Queue,
	operatorNotifier notifier.INotifier,
	store *SessionStore,
	queue *HandoverQueue,
	timers *TimerRegistry,
	convos *ConversationLog,
	feed *Feed,
	cfg Config,
) *BotService {
	return &BotService{
		Logger:   log,
		Provider: whatsAppProvider,
		Dispatch: dispatchQueue,
		Notifier: operatorNotifier,
		Store:    store,
		Queue:    queue,
		Timers:   timers,
		Convos:   convos,
		Feed:     feed,
		cfg:      cfg,
	}
}

// normalize standardizes user input for comparison.
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

var yesAnswers = map[string]bool{"sim": true, "s": true}
var noAnswers = map[string]bool{"nao": true, "não": true, "n": true}

// HandleInbound routes one normalized webhook event through the state
// machine.
func (b *BotService) HandleInbound(ev entities.InboundEvent) {
	waID := strings.TrimSpace(ev.WaID)
	if waID == "" {
		return
	}
	n := normalize(ev.Text)
	if n == "" && !ev.HasImage {
		// Malformed or empty event: acknowledged upstream, nothing to do.
		return
	}

	b.Convos.Append(waID, entities.AuthorUser, ev.Text)

	b.mu.Lock()
	defer b.mu.Unlock()

	stage := b.Store.State(waID)
	stage = b.rescueContext(waID, stage, n)

	b.resetInactivity(waID, stage)

	switch stage {
	case entities.StateIdle, entities.StateEnded:
		b.sendText(waID, msgWelcome)
		b.sendRootMenu(waID)
		b.setState(waID, entities.StateAwaitMainChoice)

	case entities.StateAwaitHumanName:
		b.handleHumanName(waID, ev.Text)

	case entities.StateAwaitMainChoice:
		b.handleMainChoice(waID, n)

	case entities.StateAwaitPontoChoice:
		b.handleSubmenuChoice(waID, n, MenuPonto)

	case entities.StateAwaitFolhaChoice:
		b.handleSubmenuChoice(waID, n, MenuFolha)

	case entities.StateAwaitHoleriteInput:
		b.handleHoleriteInput(waID, ev)

	case entities.StateAwaitBackMenu:
		b.handleBackMenu(waID, n)

	case entities.StateManual:
		// A human owns this conversation; the bot stays silent.

	case entities.StateHandover:
		b.sendText(waID, msgAskHandover)
		b.setState(waID, entities.StateAwaitHandoverChoice)

	case entities.StateAwaitHandoverChoice:
		b.handleHandoverChoice(waID, n)

	default:
		// Unknown state: clean up and restart from the root menu.
		b.Queue.Remove(waID)
		b.sendRootMenu(waID)
		b.setState(waID, entities.StateAwaitMainChoice)
	}
}

// rescueContext redirects a desynchronized await_main_choice to the submenu
// the party is visibly answering, when the last-menu hint is fresh and the
// digit is valid there. The hint is advisory: any other authoritative state,
// handover and manual included, wins unconditionally.
func (b *BotService) rescueContext(waID string, stage entities.ConversationState, n string) entities.ConversationState {
	if stage != entities.StateAwaitMainChoice {
		return stage
	}
	ctx, ok := b.Store.MenuContext(waID)
	if !ok || time.Since(ctx.At) >= b.cfg.MenuContextTTL {
		return stage
	}
	if _, valid := menuOptions(ctx.Menu)[n]; !valid {
		return stage
	}

	var redirected entities.ConversationState
	switch ctx.Menu {
	case MenuPonto:
		redirected = entities.StateAwaitPontoChoice
	case MenuFolha:
		redirected = entities.StateAwaitFolhaChoice
	default:
		return stage
	}

	b.Logger.Debug(fmt.Sprintf("Context rescue: redirecting %s to %s", waID, redirected))
	b.Store.SetState(waID, redirected)
	return redirected
}

func (b *BotService) handleMainChoice(waID, n string) {
	switch n {
	case "1":
		b.sendMenu(waID, MenuPonto)
		b.setState(waID, entities.StateAwaitPontoChoice)
	case "2":
		b.sendMenu(waID, MenuFolha)
		b.setState(waID, entities.StateAwaitFolhaChoice)
	case "3":
		b.sendText(waID, msgHoleritePrompt)
		b.Store.SetTopic(waID, entities.TopicSession{})
		b.setState(waID, entities.StateAwaitHoleriteInput)
	case "4":
		b.escalate(waID)
	default:
		b.sendText(waID, msgUnrecognized)
		b.sendRootMenu(waID)
	}
}

func (b *BotService) handleSubmenuChoice(waID, n, menu string) {
	opt, ok := menuOptions(menu)[n]
	if !ok {
		b.sendText(waID, msgUnrecognized)
		b.sendMenu(waID, menu)
		return
	}

	switch opt.action {
	case ActionBackToRoot:
		b.Queue.Remove(waID)
		b.sendRootMenu(waID)
		b.setState(waID, entities.StateAwaitMainChoice)
	case ActionEscalate:
		b.escalate(waID)
	case ActionShowGuide:
		b.sendText(waID, opt.guide)
		b.sendText(waID, msgAskBack)
		b.setState(waID, entities.StateAwaitBackMenu)
	}
}

func (b *BotService) handleBackMenu(waID, n string) {
	switch {
	case yesAnswers[n]:
		b.Queue.Remove(waID)
		b.sendRootMenu(waID)
		b.setState(waID, entities.StateAwaitMainChoice)
	case noAnswers[n]:
		b.sendText(waID, msgThanks)
		b.Queue.Remove(waID)
		b.setState(waID, entities.StateEnded)
	default:
		b.sendText(waID, msgUnrecognizedYesNo)
		b.sendText(waID, msgAskBack)
	}
}

func (b *BotService) handleHoleriteInput(waID string, ev entities.InboundEvent) {
	sess := b.Store.Topic(waID)
	if strings.TrimSpace(ev.Text) != "" {
		sess.HasText = true
	}
	if ev.HasImage {
		sess.HasImage = true
	}
	b.Store.SetTopic(waID, sess)

	// Minimal feedback to steer the party toward the missing part.
	if !sess.HasText {
		b.sendText(waID, msgHoleriteNeedText)
	} else if !sess.HasImage {
		b.sendText(waID, msgHoleriteNeedImage)
	}

	if sess.HasText && sess.HasImage {
		b.Timers.ArmEscalation(waID, b.cfg.TopicForwardDelay, func() {
			b.onTopicForward(waID)
		})
	}
	// State stays await_holerite_question; the timer drives the handover.
}

func (b *BotService) handleHumanName(waID, text string) {
	name := strings.Join(strings.Fields(text), " ")
	if len([]rune(name)) < 2 {
		b.sendText(waID, msgAskNameAgain)
		return
	}
	b.Store.SetName(waID, name)
	b.escalateNamed(waID)
}

func (b *BotService) handleHandoverChoice(waID, n string) {
	switch n {
	case "1":
		b.Queue.Remove(waID)
		b.sendRootMenu(waID)
		b.setState(waID, entities.StateAwaitMainChoice)
	case "2":
		b.escalateNamed(waID)
	default:
		b.sendText(waID, msgUnrecognized)
		b.sendText(waID, msgAskHandover)
	}
}

// escalate starts the shared escalation path: collect the display name once,
// then hand the conversation to the queue.
func (b *BotService) escalate(waID string) {
	if strings.TrimSpace(b.Store.Name(waID)) == "" {
		b.sendText(waID, msgAskName)
		b.setState(waID, entities.StateAwaitHumanName)
		return
	}
	b.escalateNamed(waID)
}

// escalateNamed enqueues the party, acknowledges without revealing the queue
// position, silences the bot and alerts the operator channel. Notification
// failure never reverts the transition already committed here.
func (b *BotService) escalateNamed(waID string) {
	position := b.Queue.Enqueue(waID)
	b.sendText(waID, msgHandover)
	b.setState(waID, entities.StateHandover)
	b.Timers.StopInactivity(waID)

	go func() {
		if err := b.Notifier.Notify(waID, position); err != nil {
			b.Logger.Error(fmt.Sprintf("Failed to notify operator about %s: %v", waID, err))
		}
	}()
}

// onTopicForward is the escalation timer callback for the holerite flow.
func (b *BotService) onTopicForward(waID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// The party may have been escalated, assumed or ended while the timer
	// was pending; only a live holerite session is forwarded.
	if b.Store.State(waID) != entities.StateAwaitHoleriteInput {
		return
	}
	b.Store.ClearTopic(waID)
	b.escalate(waID)
}

// onInactivity is the inactivity timer callback.
func (b *BotService) onInactivity(waID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.Store.State(waID)
	if current == entities.StateHandover || current == entities.StateManual || current == entities.StateEnded {
		return
	}
	b.sendText(waID, msgThanks)
	b.setState(waID, entities.StateEnded)
}

// resetInactivity rearms the party's inactivity window, replacing any
// pending timer. Escalated and human-owned conversations are never closed
// for inactivity.
func (b *BotService) resetInactivity(waID string, stage entities.ConversationState) {
	if stage == entities.StateHandover || stage == entities.StateManual {
		return
	}
	b.Timers.ArmInactivity(waID, b.cfg.InactivityTimeout, func() {
		b.onInactivity(waID)
	})
}

// setState records the new state and pushes a live-feed notification.
func (b *BotService) setState(waID string, st entities.ConversationState) {
	b.Store.SetState(waID, st)
	b.Feed.NotifyConversations()
	b.Feed.NotifyConversation(waID)
}

func (b *BotService) sendRootMenu(waID string) {
	b.Store.SetMenuContext(waID, MenuRoot)
	b.sendText(waID, msgRootMenu)
}

func (b *BotService) sendMenu(waID, menu string) {
	b.Store.SetMenuContext(waID, menu)
	b.sendText(waID, menuText(menu))
}

// sendText queues a bot-authored send. The message is appended to the
// conversation record only once the provider accepted it; a record problem
// can never fail the send.
func (b *BotService) sendText(to, text string) *dispatch.Pending {
	return b.Dispatch.Enqueue(to, func() error {
		if err := b.Provider.SendTextMessage(to, text); err != nil {
			return err
		}
		b.Convos.Append(to, entities.AuthorBot, text)
		return nil
	})
}

// sendHumanText queues a human-authored send from the admin panel.
func (b *BotService) sendHumanText(to, text string) *dispatch.Pending {
	return b.Dispatch.Enqueue(to, func() error {
		if err := b.Provider.SendTextMessage(to, text); err != nil {
			return err
		}
		b.Convos.Append(to, entities.AuthorHuman, text)
		return nil
	})
}
