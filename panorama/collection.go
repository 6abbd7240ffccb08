// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"iter"
	"slices"

	"github.com/gogpu/pano"
)

// Collection is the set of entities built by a Factory, with an event bus
// for entered and exited notifications.
//
// The entity set is fixed at creation; event methods are safe for
// concurrent use.
type Collection struct {
	entities []*Entity
	byID     map[string]*Entity
	events   eventBus
}

func newCollection(entities []*Entity) *Collection {
	c := &Collection{
		entities: entities,
		byID:     make(map[string]*Entity, len(entities)),
	}
	for _, e := range entities {
		if _, dup := c.byID[e.ID()]; !dup {
			c.byID[e.ID()] = e
		}
	}
	return c
}

// Entities iterates over the entities in provider order.
func (c *Collection) Entities() iter.Seq[*Entity] {
	return slices.Values(c.entities)
}

// Len returns the number of entities.
func (c *Collection) Len() int {
	return len(c.entities)
}

// Icons returns the icons of the entities in the same order.
func (c *Collection) Icons() []*Icon {
	icons := make([]*Icon, len(c.entities))
	for i, e := range c.entities {
		icons[i] = e.icon
	}
	return icons
}

// Find returns the entity with the given id.
func (c *Collection) Find(id string) (*Entity, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// ByIcon returns the entity paired with icon.
func (c *Collection) ByIcon(icon *Icon) (*Entity, bool) {
	for _, e := range c.entities {
		if e.icon == icon {
			return e, true
		}
	}
	return nil, false
}

// On registers fn for events of kind k. Handlers of one kind run in
// registration order. An unknown kind returns an error wrapping
// pano.ErrUnsupportedEvent.
func (c *Collection) On(k EventKind, fn Handler) (Subscription, error) {
	return c.events.on(k, fn)
}

// Off removes the handler registered under sub. Removing an unknown
// subscription does nothing.
func (c *Collection) Off(k EventKind, sub Subscription) error {
	return c.events.off(k, sub)
}

// Emit calls the handlers registered for k with e.
func (c *Collection) Emit(k EventKind, e *Entity) error {
	return c.events.emit(k, e)
}

// Dispose unloads every entity and drops all event handlers.
func (c *Collection) Dispose() {
	for _, e := range c.entities {
		e.Unload()
	}
	c.events.clear()
	pano.Logger().Info("panorama: collection disposed", "entities", len(c.entities))
}
