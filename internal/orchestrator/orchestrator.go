// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package orchestrator

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/lukasdevjobs1/profile-chat/internal/model"
	"github.com/lukasdevjobs1/profile-chat/internal/provider"
	"github.com/lukasdevjobs1/profile-chat/internal/stream"
)

// DefaultRelayInterval is the cadence at which the running concatenation is
// pushed to the UI. Deliberately coarser than the fragment cadence so the
// UI is not redrawn for every word.
const DefaultRelayInterval = 200 * time.Millisecond

// apologyMessage is shown (and recorded) when a provider fails
// mid-conversation. The raw error never reaches the user.
const apologyMessage = "Erro ao processar sua solicitação. Tente novamente!"

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the orchestrator's conversation state.
type State int

const (
	// StateIdle means no exchange is in flight.
	StateIdle State = iota
	// StateEnriching means the system prompt is being augmented.
	StateEnriching
	// StateAwaitingProvider means the provider call is outstanding.
	StateAwaitingProvider
	// StateStreaming means fragments are being relayed to the UI.
	StateStreaming
	// StateCancelled is the terminal state of a user-cancelled exchange;
	// it resolves back to Idle.
	StateCancelled
	// StateFailed is the terminal state of a provider-failed exchange; it
	// resolves back to Idle.
	StateFailed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEnriching:
		return "enriching"
	case StateAwaitingProvider:
		return "awaiting_provider"
	case StateStreaming:
		return "streaming"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// COLLABORATOR CONTRACTS
// =============================================================================

// Enricher augments the system prompt from the user's message. Enrichment
// always succeeds, possibly returning the prompt unchanged.
type Enricher interface {
	Enrich(ctx context.Context, basePrompt, userText string) string
}

// Responder is the provider router as seen by the orchestrator.
type Responder interface {
	Initialize(ctx context.Context, systemPrompt string) error
	Respond(ctx context.Context, req provider.Request) (string, error)
	Ready() bool
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Config wires the orchestrator's collaborators.
type Config struct {
	SystemPrompt string
	Enricher     Enricher
	Router       Responder
	Boundary     Boundary

	// Pacer overrides the fragment pacing (tests use stream.NopPacer()).
	Pacer stream.Pacer

	// RelayInterval overrides the UI push cadence.
	RelayInterval time.Duration
}

// Orchestrator owns one conversation: it issues cancellation tokens, runs
// enrichment, routes to a provider, paces the answer into fragments, relays
// them to the UI boundary, and bounds the history. Created once per widget
// session; Close tears down any in-flight stream.
type Orchestrator struct {
	mu      sync.Mutex
	state   State
	history *model.History

	systemPrompt  string
	enricher      Enricher
	router        Responder
	boundary      Boundary
	pacer         stream.Pacer
	relayInterval time.Duration

	cancelMgr *cancelManager

	// degradedExchanges counts exchanges answered by the rule-based
	// fallback or the apology path, for telemetry. The UI never sees the
	// distinction.
	degradedExchanges int
}

// New creates an orchestrator for one widget session.
func New(cfg Config) *Orchestrator {
	pacer := cfg.Pacer
	if pacer == nil {
		pacer = stream.DefaultPacer()
	}
	relay := cfg.RelayInterval
	if relay <= 0 {
		relay = DefaultRelayInterval
	}

	return &Orchestrator{
		state:         StateIdle,
		history:       model.NewHistory(),
		systemPrompt:  cfg.SystemPrompt,
		enricher:      cfg.Enricher,
		router:        cfg.Router,
		boundary:      cfg.Boundary,
		pacer:         pacer,
		relayInterval: relay,
		cancelMgr:     newCancelManager(),
	}
}

// Initialize activates a provider through the router. A total failure is
// not fatal: the orchestrator keeps accepting input and answers from the
// rule-based fallback.
func (o *Orchestrator) Initialize(ctx context.Context) error {
	err := o.router.Initialize(ctx, o.systemPrompt)
	if err != nil {
		log.Printf("ORCHESTRATOR: provider initialization failed, degraded mode: %v", err)
	}
	return err
}

// State returns the current conversation state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// History returns a copy of the bounded conversation history.
func (o *Orchestrator) History() []model.Turn {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.history.Turns()
}

// DegradedExchanges returns how many exchanges were answered without a real
// provider.
func (o *Orchestrator) DegradedExchanges() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.degradedExchanges
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// =============================================================================
// EXCHANGE LIFECYCLE
// =============================================================================

// Send starts a new exchange for the given user text. A previous in-flight
// exchange is cancelled first: at most one stream exists per conversation.
// Returns the done channel of the new exchange (closed when it resolves),
// which tests and Close use to synchronize.
func (o *Orchestrator) Send(userText string) <-chan struct{} {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	prev := o.cancelMgr.begin(cancel, done)

	o.boundary.AppendUserTurn(userText)
	o.boundary.ShowPending()
	o.boundary.SetInputEnabled(false)
	o.setState(StateEnriching)

	go o.run(ctx, userText, prev, done)
	return done
}

// Cancel triggers the cancellation token of the in-flight exchange. Safe to
// call when idle or after natural completion.
func (o *Orchestrator) Cancel() {
	o.cancelMgr.cancel()
}

// Close cancels any in-flight exchange and waits for it to flush.
func (o *Orchestrator) Close() {
	done := o.cancelMgr.doneChannel()
	o.cancelMgr.clear()
	if done != nil {
		<-done
	}
}

// run executes one exchange: enrich, route, stream, relay, record.
func (o *Orchestrator) run(ctx context.Context, userText string, prev, done chan struct{}) {
	defer close(done)

	// Let the previous exchange finish its final flush so UI pushes from
	// two exchanges never interleave.
	if prev != nil {
		<-prev
	}

	defer func() {
		o.boundary.HidePending()
		o.boundary.SetInputEnabled(true)
		o.setState(StateIdle)
	}()

	// Enrichment never blocks the conversation; failures inside return the
	// prompt unchanged.
	enriched := o.enricher.Enrich(ctx, o.systemPrompt, userText)
	if ctx.Err() != nil {
		o.setState(StateCancelled)
		return
	}

	o.setState(StateAwaitingProvider)

	answer, outcome := o.resolveAnswer(ctx, userText, enriched)
	if outcome == StateCancelled {
		o.setState(StateCancelled)
		return
	}

	o.setState(StateStreaming)
	completed := o.relay(ctx, answer)

	if !completed {
		// Cancelled mid-stream: the partial text was already flushed
		// exactly once by relay; the exchange leaves no history.
		o.setState(StateCancelled)
		return
	}

	o.mu.Lock()
	o.history.AppendExchange(userText, answer)
	if outcome == StateFailed || !o.router.Ready() {
		o.degradedExchanges++
	}
	o.mu.Unlock()

	if outcome == StateFailed {
		o.setState(StateFailed)
	}
}

// resolveAnswer produces the full answer text for the exchange. The second
// return is StateFailed when the provider failed (answer is the apology),
// StateCancelled on cancellation, StateIdle otherwise.
func (o *Orchestrator) resolveAnswer(ctx context.Context, userText, enrichedPrompt string) (string, State) {
	if !o.router.Ready() {
		// Degraded mode: deterministic rule-based answer.
		return provider.FallbackResponse(userText), StateIdle
	}

	answer, err := o.router.Respond(ctx, provider.Request{
		SystemPrompt: enrichedPrompt,
		UserText:     userText,
		History:      o.History(),
	})
	if err == nil {
		return answer, StateIdle
	}
	if provider.IsCancelled(err) || ctx.Err() != nil {
		return "", StateCancelled
	}

	log.Printf("ORCHESTRATOR: provider respond failed: %v", err)
	return apologyMessage, StateFailed
}

// relay paces the answer into fragments and pushes the running
// concatenation to the UI at the relay cadence, only when it changed.
// Returns whether the stream completed naturally.
func (o *Orchestrator) relay(ctx context.Context, answer string) bool {
	handle := o.boundary.BeginStreamingTurn()

	s := stream.New(ctx, answer, o.pacer)
	ticker := time.NewTicker(o.relayInterval)
	defer ticker.Stop()

	var full strings.Builder
	lastPushed := ""
	pendingHidden := false

	push := func() {
		text := full.String()
		if text == "" || text == lastPushed {
			return
		}
		if !pendingHidden {
			o.boundary.HidePending()
			pendingHidden = true
		}
		lastPushed = text
		o.boundary.UpdateStreamingTurn(handle, text)
	}

	for {
		select {
		case fragment, ok := <-s.Fragments():
			if !ok {
				// Stream ended, naturally or by cancellation. Flush the
				// accumulated text exactly once either way.
				push()
				return ctx.Err() == nil
			}
			full.WriteString(fragment)
		case <-ticker.C:
			push()
		}
	}
}
