// Package session decides, per page load, whether a signed-in user may
// see a protected page, and keeps re-checking the license while the
// session lives.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/licenses"
)

type State string

const (
	StateAnonymous  State = "anonymous"
	StateUnverified State = "authenticated-unverified"
	StateVerified   State = "authenticated-verified"
	StateExempt     State = "authenticated-exempt"
)

type Decision string

const (
	DecisionShowLogin Decision = "show-login"
	DecisionRedirect  Decision = "redirect-to-verification"
	DecisionGrant     Decision = "grant"
)

// Verifier is the License Authority slice the gatekeeper needs.
type Verifier interface {
	Verify(ctx context.Context, key string) (*licenses.Verdict, error)
}

// KeyStore holds the cached license key between page loads. The redis
// implementation lives in infra/cache; tests use an in-memory one.
type KeyStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Gatekeeper is the per-session state machine. One instance per active
// session; all methods are safe for concurrent use.
type Gatekeeper struct {
	verifier Verifier
	keys     KeyStore
	exempt   map[string]bool
	interval time.Duration
	log      *slog.Logger

	// onRedirect fires whenever a verification failure forces the user
	// to the verification page.
	onRedirect func()

	mu        sync.Mutex
	state     State
	stopTimer chan struct{}
	checking  bool
}

func NewGatekeeper(verifier Verifier, keys KeyStore, exemptPages []string, interval time.Duration, onRedirect func(), log *slog.Logger) *Gatekeeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	exempt := make(map[string]bool, len(exemptPages))
	for _, p := range exemptPages {
		exempt[p] = true
	}
	return &Gatekeeper{
		verifier:   verifier,
		keys:       keys,
		exempt:     exempt,
		interval:   interval,
		onRedirect: onRedirect,
		log:        log,
		state:      StateAnonymous,
	}
}

func (g *Gatekeeper) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SignIn handles the identity-provider sign-in event for a page load
// and returns what the page should do. On a protected page with a valid
// cached key the recurring re-verification starts as a side effect.
func (g *Gatekeeper) SignIn(ctx context.Context, page string) (Decision, error) {
	g.mu.Lock()
	g.state = StateUnverified
	g.mu.Unlock()

	if g.exempt[page] {
		g.setState(StateExempt)
		return DecisionGrant, nil
	}

	key, err := g.keys.Get(ctx)
	if err != nil {
		return "", err
	}
	if key == "" {
		// Redirect is an exit, not a state the user remains in.
		return DecisionRedirect, nil
	}

	verdict, err := g.verifier.Verify(ctx, key)
	if err != nil {
		return "", err
	}
	if !verdict.Valid {
		if err := g.keys.Clear(ctx); err != nil {
			g.log.Error("clearing license key failed", "err", err)
		}
		return DecisionRedirect, nil
	}

	g.setState(StateVerified)
	g.startTimer()
	return DecisionGrant, nil
}

// SignOut handles the identity-provider sign-out event: the cached key
// is cleared and the re-verification timer canceled.
func (g *Gatekeeper) SignOut(ctx context.Context) {
	g.cancelTimer()
	if err := g.keys.Clear(ctx); err != nil {
		g.log.Error("clearing license key failed", "err", err)
	}
	g.setState(StateAnonymous)
}

func (g *Gatekeeper) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

func (g *Gatekeeper) startTimer() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopTimer != nil {
		return // already running
	}
	stop := make(chan struct{})
	g.stopTimer = stop
	go g.loop(stop)
}

func (g *Gatekeeper) cancelTimer() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopTimer != nil {
		close(g.stopTimer)
		g.stopTimer = nil
	}
}

func (g *Gatekeeper) loop(stop chan struct{}) {
	t := time.NewTicker(g.interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			g.tick()
		}
	}
}

// tick re-runs verification with the cached key. A tick that fires
// while a prior check is still outstanding is dropped.
func (g *Gatekeeper) tick() {
	g.mu.Lock()
	if g.checking {
		g.mu.Unlock()
		return
	}
	g.checking = true
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.checking = false
		g.mu.Unlock()
	}()

	ctx := context.Background()
	key, err := g.keys.Get(ctx)
	if err != nil {
		g.log.Error("reading license key failed", "err", err)
		return
	}
	if key == "" {
		g.invalidate(ctx)
		return
	}
	verdict, err := g.verifier.Verify(ctx, key)
	if err != nil {
		g.log.Error("license re-verification failed", "err", err)
		return
	}
	if !verdict.Valid {
		g.log.Info("license no longer valid", "reason", verdict.Reason)
		g.invalidate(ctx)
	}
}

// invalidate clears the cached key, cancels the timer and forces the
// redirect transition.
func (g *Gatekeeper) invalidate(ctx context.Context) {
	if err := g.keys.Clear(ctx); err != nil {
		g.log.Error("clearing license key failed", "err", err)
	}
	g.cancelTimer()
	g.setState(StateUnverified)
	if g.onRedirect != nil {
		g.onRedirect()
	}
}
