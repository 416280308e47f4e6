package engine

import "github.com/benbeisheim/chessrules/internal/model"

type EventType string

const (
	EventMoveCompleted  EventType = "moveCompleted"
	EventMoveRejected   EventType = "moveRejected"
	EventPositionLoaded EventType = "positionLoaded"
)

// Event describes a state transition, or a refused one, of a Game.
type Event struct {
	Type    EventType          `json:"type"`
	Move    *model.Move        `json:"move,omitempty"`
	Request *model.MoveRequest `json:"request,omitempty"`
	Reason  string             `json:"reason,omitempty"`
	ToMove  model.Color        `json:"toMove"`
	Status  Status             `json:"status"`
	FEN     string             `json:"fen"`
}

// Observer receives Game events synchronously, in registration order, after
// the game has reached its new state.
type Observer interface {
	Notify(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) {
	f(e)
}

type observerEntry struct {
	id       int
	observer Observer
}

// Observe registers o and returns a function that removes it.
func (g *Game) Observe(o Observer) (cancel func()) {
	g.nextID++
	id := g.nextID
	g.observers = append(g.observers, observerEntry{id: id, observer: o})
	return func() {
		for i, entry := range g.observers {
			if entry.id == id {
				g.observers = append(g.observers[:i:i], g.observers[i+1:]...)
				return
			}
		}
	}
}

func (g *Game) notify(e Event) {
	e.ToMove = g.pos.ToMove
	e.Status = g.status
	e.FEN = g.pos.FEN()
	observers := append([]observerEntry(nil), g.observers...)
	for _, entry := range observers {
		entry.observer.Notify(e)
	}
}
