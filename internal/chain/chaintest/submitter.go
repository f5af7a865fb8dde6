// Package chaintest provides an in-memory chain.Submitter for tests.
package chaintest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rovshanmuradov/launchpad/internal/chain"
)

// Submitter records submitted calls and answers them with canned results.
type Submitter struct {
	mu sync.Mutex

	Calls []chain.Call

	// Receipt is returned by Wait. Its TxHash is overwritten with the call's hash.
	Receipt   *chain.Receipt
	SubmitErr error
	WaitErr   error

	// Views answers CallView by method name.
	Views   map[string][]interface{}
	ViewErr error
}

// Submit records call and returns a pending transaction.
func (s *Submitter) Submit(_ context.Context, call chain.Call) (chain.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SubmitErr != nil {
		return nil, s.SubmitErr
	}
	s.Calls = append(s.Calls, call)
	hash := crypto.Keccak256Hash([]byte(fmt.Sprintf("%s-%d", call.Method, len(s.Calls))))

	receipt := &chain.Receipt{Status: 1}
	if s.Receipt != nil {
		copied := *s.Receipt
		receipt = &copied
	}
	receipt.TxHash = hash
	return &pending{hash: hash, receipt: receipt, err: s.WaitErr}, nil
}

// CallView answers from Views.
func (s *Submitter) CallView(_ context.Context, call chain.Call) ([]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ViewErr != nil {
		return nil, s.ViewErr
	}
	out, ok := s.Views[call.Method]
	if !ok {
		return nil, fmt.Errorf("no canned result for %s", call.Method)
	}
	return out, nil
}

// Submitted returns a copy of the recorded calls.
func (s *Submitter) Submitted() []chain.Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chain.Call(nil), s.Calls...)
}

type pending struct {
	hash    common.Hash
	receipt *chain.Receipt
	err     error
}

func (p *pending) Hash() common.Hash {
	return p.hash
}

func (p *pending) Wait(context.Context) (*chain.Receipt, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.receipt, nil
}
