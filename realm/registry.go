package realm

import "sort"

// Handle identifies a registration in a List.
type Handle uint32

// List is a plain registry of participants that are not ECS entities.
type List struct {
	next  Handle
	items map[Handle]Participant
}

func NewList() *List {
	return &List{items: map[Handle]Participant{}}
}

// Register adds p and returns the handle needed to remove it.
func (l *List) Register(p Participant) Handle {
	if l.items == nil {
		l.items = map[Handle]Participant{}
	}
	l.next++
	l.items[l.next] = p
	return l.next
}

func (l *List) Unregister(h Handle) bool {
	if _, ok := l.items[h]; !ok {
		return false
	}
	delete(l.items, h)
	return true
}

func (l *List) Len() int {
	return len(l.items)
}

// Participants returns a snapshot in registration order.
func (l *List) Participants() []Participant {
	handles := make([]Handle, 0, len(l.items))
	for h := range l.items {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	out := make([]Participant, 0, len(handles))
	for _, h := range handles {
		out = append(out, l.items[h])
	}
	return out
}

// Registries concatenates several registries.
type Registries []Registry

func (rs Registries) Participants() []Participant {
	var out []Participant
	for _, r := range rs {
		if r == nil {
			continue
		}
		out = append(out, r.Participants()...)
	}
	return out
}
