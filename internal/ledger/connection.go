package ledger

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"

	appconfig "github.com/farmnet/farmledger/internal/config"
	"github.com/farmnet/farmledger/pkg/logger"
	"github.com/farmnet/farmledger/pkg/metrics"
)

// Invoker submits or evaluates one chaincode transaction. Satisfied by
// *gateway.Contract.
type Invoker interface {
	SubmitTransaction(name string, args ...string) ([]byte, error)
	EvaluateTransaction(name string, args ...string) ([]byte, error)
}

// Strategy is one way to dial the network. Strategies are tried in
// order; adding one is appending an element, not restructuring control
// flow.
type Strategy struct {
	Name      string
	Discovery bool
	Timeout   time.Duration
}

// DefaultStrategies tries service discovery first (bounded by
// timeout), then falls back to the static peer and orderer addresses
// in the connection profile.
func DefaultStrategies(discoveryTimeout time.Duration) []Strategy {
	return []Strategy{
		{Name: "discovery", Discovery: true, Timeout: discoveryTimeout},
		{Name: "static", Discovery: false},
	}
}

// Session is a single-use authenticated connection to the ledger
// network. It is owned by exactly one request and never shared or
// pooled; the setup cost per request buys the absence of cross-request
// session state.
type Session struct {
	invoker  Invoker
	identity string
	strategy string
	closeFn  func()
	once     sync.Once
}

// NewSession wraps an established contract handle. closeFn releases
// the underlying gateway; it may be nil.
func NewSession(inv Invoker, identity, strategy string, closeFn func()) *Session {
	return &Session{invoker: inv, identity: identity, strategy: strategy, closeFn: closeFn}
}

func (s *Session) Submit(fn string, args ...string) ([]byte, error) {
	return s.invoker.SubmitTransaction(fn, args...)
}

func (s *Session) Evaluate(fn string, args ...string) ([]byte, error) {
	return s.invoker.EvaluateTransaction(fn, args...)
}

func (s *Session) Identity() string { return s.identity }

// Close releases the session. Idempotent; call it on every exit path.
func (s *Session) Close() {
	s.once.Do(func() {
		if s.closeFn != nil {
			s.closeFn()
		}
	})
}

// Wallet is the identity-store surface the manager needs.
type Wallet interface {
	Exists(label string) bool
}

type connectFunc func(identity string, st Strategy) (*Session, error)

// Manager hands out one ledger session per logical unit of work. The
// connection profile and wallet it is built from are read-only.
type Manager struct {
	wallet     Wallet
	strategies []Strategy
	connect    connectFunc
}

// NewManager opens the filesystem wallet and prepares the connect
// strategies from the Fabric configuration.
func NewManager(cfg appconfig.FabricConfig) (*Manager, error) {
	wallet, err := gateway.NewFileSystemWallet(cfg.WalletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet %s: %w", cfg.WalletPath, err)
	}
	m := &Manager{
		wallet:     wallet,
		strategies: DefaultStrategies(cfg.DiscoveryTimeout),
	}
	m.connect = func(identity string, st Strategy) (*Session, error) {
		return dial(cfg, wallet, identity, st)
	}
	return m, nil
}

// newManagerWithConnect is the test seam: same strategy walk, fake dial.
func newManagerWithConnect(w Wallet, strategies []Strategy, connect connectFunc) *Manager {
	return &Manager{wallet: w, strategies: strategies, connect: connect}
}

// Acquire returns a live session for the named identity. A discovery
// failure is recoverable and triggers the next strategy; when every
// strategy fails the composite ConnectError carries all causes.
func (m *Manager) Acquire(identity string) (*Session, error) {
	if !m.wallet.Exists(identity) {
		return nil, fmt.Errorf("%q: %w", identity, ErrIdentityNotFound)
	}

	attempts := make([]Attempt, 0, len(m.strategies))
	for _, st := range m.strategies {
		sess, err := m.connect(identity, st)
		if err == nil {
			metrics.LedgerConnects.WithLabelValues(st.Name, "ok").Inc()
			return sess, nil
		}
		metrics.LedgerConnects.WithLabelValues(st.Name, "error").Inc()
		logger.Warnf("connect strategy %s failed for %s: %v", st.Name, identity, err)
		attempts = append(attempts, Attempt{Strategy: st.Name, Err: err})
	}
	return nil, &ConnectError{Identity: identity, Attempts: attempts}
}

func dial(cfg appconfig.FabricConfig, wallet *gateway.Wallet, identity string, st Strategy) (*Session, error) {
	opts := []gateway.Option{gateway.WithDiscovery(st.Discovery)}
	if st.Timeout > 0 {
		opts = append(opts, gateway.WithTimeout(st.Timeout))
	}
	gw, err := gateway.Connect(
		gateway.WithConfig(config.FromFile(filepath.Clean(cfg.CCPPath))),
		gateway.WithIdentity(wallet, identity),
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("gateway connect (%s): %w", st.Name, err)
	}
	network, err := gw.GetNetwork(cfg.Channel)
	if err != nil {
		// release the half-open gateway before the next strategy runs
		gw.Close()
		return nil, fmt.Errorf("get network %s (%s): %w", cfg.Channel, st.Name, err)
	}
	contract := network.GetContract(cfg.Chaincode)
	return NewSession(contract, identity, st.Name, gw.Close), nil
}
