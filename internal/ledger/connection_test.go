package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeWallet struct {
	labels map[string]bool
}

func (f *fakeWallet) Exists(label string) bool { return f.labels[label] }

type fakeInvoker struct {
	submitted []string
}

func (f *fakeInvoker) SubmitTransaction(name string, args ...string) ([]byte, error) {
	f.submitted = append(f.submitted, name)
	return []byte(`{}`), nil
}

func (f *fakeInvoker) EvaluateTransaction(name string, args ...string) ([]byte, error) {
	return []byte(`{}`), nil
}

func twoStrategies() []Strategy {
	return DefaultStrategies(10 * time.Second)
}

func TestAcquireUnknownIdentity(t *testing.T) {
	connects := 0
	m := newManagerWithConnect(&fakeWallet{}, twoStrategies(), func(identity string, st Strategy) (*Session, error) {
		connects++
		return nil, errors.New("should not be reached")
	})

	_, err := m.Acquire("ghost")
	require.ErrorIs(t, err, ErrIdentityNotFound)
	require.Zero(t, connects, "no connection attempt may be made for an unknown identity")
}

func TestAcquireFirstStrategySucceeds(t *testing.T) {
	wallet := &fakeWallet{labels: map[string]bool{"appUser": true}}
	m := newManagerWithConnect(wallet, twoStrategies(), func(identity string, st Strategy) (*Session, error) {
		return NewSession(&fakeInvoker{}, identity, st.Name, nil), nil
	})

	sess, err := m.Acquire("appUser")
	require.NoError(t, err)
	require.Equal(t, "discovery", sess.strategy)
	require.Equal(t, "appUser", sess.Identity())
}

func TestAcquireFallsBackToStatic(t *testing.T) {
	wallet := &fakeWallet{labels: map[string]bool{"appUser": true}}
	var tried []string
	m := newManagerWithConnect(wallet, twoStrategies(), func(identity string, st Strategy) (*Session, error) {
		tried = append(tried, st.Name)
		if st.Discovery {
			return nil, errors.New("discovery timed out")
		}
		return NewSession(&fakeInvoker{}, identity, st.Name, nil), nil
	})

	sess, err := m.Acquire("appUser")
	require.NoError(t, err)
	require.Equal(t, []string{"discovery", "static"}, tried)
	require.Equal(t, "static", sess.strategy)

	// the fallback session is usable
	_, err = sess.Submit("InitLedger")
	require.NoError(t, err)
}

func TestAcquireAllStrategiesFail(t *testing.T) {
	wallet := &fakeWallet{labels: map[string]bool{"appUser": true}}
	m := newManagerWithConnect(wallet, twoStrategies(), func(identity string, st Strategy) (*Session, error) {
		if st.Discovery {
			return nil, errors.New("discovery timed out")
		}
		return nil, errors.New("no endorsing peers reachable")
	})

	_, err := m.Acquire("appUser")
	require.Error(t, err)

	var cerr *ConnectError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Attempts, 2)
	require.Contains(t, err.Error(), "discovery timed out")
	require.Contains(t, err.Error(), "no endorsing peers reachable")
	require.Contains(t, err.Error(), "network is up")
	require.Contains(t, err.Error(), "enrolled in the wallet")
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	closes := 0
	sess := NewSession(&fakeInvoker{}, "appUser", "static", func() { closes++ })

	sess.Close()
	sess.Close()
	sess.Close()
	require.Equal(t, 1, closes)
}

func TestDefaultStrategiesShape(t *testing.T) {
	sts := DefaultStrategies(10 * time.Second)
	require.Len(t, sts, 2)
	require.True(t, sts[0].Discovery)
	require.Equal(t, 10*time.Second, sts[0].Timeout)
	require.False(t, sts[1].Discovery)
	require.Zero(t, sts[1].Timeout)
}
