// Package state holds the per-screen display state of each insight: whether
// a request is loading and which result is currently shown.
package state

import (
	"context"

	"github.com/kapu/sheos-insight-go/internal/domain"
)

// Key identifies one screen: a client session viewing one feature.
type Key struct {
	Session string
	Feature domain.Feature
}

func (k Key) String() string {
	return k.Session + ":" + k.Feature.String()
}

// Store is the explicit state container for screens. There is one writer per
// key: TryBegin admits a single in-flight request until Finish or Abort.
type Store interface {
	// TryBegin marks the screen as loading. It returns false when a request
	// for the same screen is already pending.
	TryBegin(ctx context.Context, key Key) (bool, error)
	// Finish clears the loading flag and replaces the displayed result.
	Finish(ctx context.Context, key Key, result domain.Envelope) error
	// Abort clears the loading flag and keeps the displayed result.
	Abort(ctx context.Context, key Key) error
	// Last loads the displayed result into dest. It returns false when the
	// screen has shown nothing yet.
	Last(ctx context.Context, key Key, dest *domain.Envelope) (bool, error)
	Close() error
}
