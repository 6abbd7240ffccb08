// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/pano"
)

// EventKind is a collection event.
type EventKind uint8

// Collection events.
const (
	// EventEntered is emitted when the viewer enters a panorama.
	EventEntered EventKind = iota + 1
	// EventExited is emitted when the viewer leaves a panorama.
	EventExited
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventEntered:
		return "entered"
	case EventExited:
		return "exited"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

func (k EventKind) valid() bool {
	return k == EventEntered || k == EventExited
}

// ParseEventKind returns the kind named "entered" or "exited".
func ParseEventKind(name string) (EventKind, error) {
	switch name {
	case "entered":
		return EventEntered, nil
	case "exited":
		return EventExited, nil
	}
	return 0, fmt.Errorf("panorama: event %q: %w", name, pano.ErrUnsupportedEvent)
}

// Handler receives the entity an event is about.
type Handler func(*Entity)

// Subscription identifies a registered handler for Off.
type Subscription uint64

// errNilHandler is returned by On for a nil handler.
var errNilHandler = errors.New("panorama: nil event handler")

type subscriber struct {
	id Subscription
	fn Handler
}

// eventBus keeps ordered subscriber lists per kind.
type eventBus struct {
	mu   sync.Mutex
	next Subscription
	subs map[EventKind][]subscriber
}

func unsupported(k EventKind) error {
	return fmt.Errorf("panorama: event %s: %w", k, pano.ErrUnsupportedEvent)
}

func (b *eventBus) on(k EventKind, fn Handler) (Subscription, error) {
	if !k.valid() {
		return 0, unsupported(k)
	}
	if fn == nil {
		return 0, errNilHandler
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[EventKind][]subscriber)
	}
	b.next++
	b.subs[k] = append(b.subs[k], subscriber{id: b.next, fn: fn})
	return b.next, nil
}

func (b *eventBus) off(k EventKind, id Subscription) error {
	if !k.valid() {
		return unsupported(k)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[k]
	for i, s := range subs {
		if s.id == id {
			b.subs[k] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	return nil
}

func (b *eventBus) emit(k EventKind, e *Entity) error {
	if !k.valid() {
		return unsupported(k)
	}
	b.mu.Lock()
	subs := b.subs[k]
	b.mu.Unlock()
	// Handlers run without the lock so they may call On or Off.
	for _, s := range subs {
		s.fn(e)
	}
	return nil
}

func (b *eventBus) clear() {
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}
