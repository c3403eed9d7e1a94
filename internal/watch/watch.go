// Package watch provides live queries over the local store.
//
// Writers call Notifier.Notify with the tables they changed once the write
// has committed. Query subscribes to those tables, re-runs its load function
// on every signal and pushes the result to a Feed, skipping results equal to
// the previous emission.
//
// # Usage
//
//	changes := watch.NewNotifier()
//	feed := watch.Query(ctx, changes, repo.SelectAll, slices.Equal, "breeds")
//	for rows := range feed.C() {
//		render(rows)
//	}
//	if err := feed.Err(); err != nil {
//		log.Printf("feed ended: %v", err)
//	}
package watch

import (
	"sync"
)

// Notifier fans table change signals out to subscribers.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	tables map[string]struct{}
	signal chan struct{}
}

// NewNotifier creates a notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]*subscriber)}
}

// Subscribe returns a channel that is signalled after any change to one of
// tables, and a function that removes the subscription. Signals coalesce:
// a subscriber that has not drained the previous signal sees one pending
// signal, not one per write.
func (n *Notifier) Subscribe(tables ...string) (<-chan struct{}, func()) {
	sub := &subscriber{
		tables: make(map[string]struct{}, len(tables)),
		signal: make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = sub
	n.mu.Unlock()

	var once sync.Once
	return sub.signal, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Notify signals every subscriber watching at least one of tables.
// It never blocks.
func (n *Notifier) Notify(tables ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		if !sub.watches(tables) {
			continue
		}
		select {
		case sub.signal <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

func (s *subscriber) watches(tables []string) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}
