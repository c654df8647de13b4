// Package city keeps an ordered, position-addressed list of city names and
// the whitelist that decides which names may enter it.
package city

import (
	"slices"
	"strings"
)

// EmptyMiddle is what MiddleCity reports for an empty list.
const EmptyMiddle = "List is empty"

const arrow = " -> "

type node struct {
	city       string
	prev, next *node
}

// List is a doubly linked list addressed by 1-based positions. Positions are
// checked against the current size on every call. The zero value is an empty
// list; it is not safe for concurrent use.
type List struct {
	head, tail *node
	size       int
}

func New() *List { return &List{} }

// InsertAtBeginning is O(1) and always succeeds.
func (l *List) InsertAtBeginning(city string) {
	n := &node{city: city}
	if l.head == nil {
		l.head, l.tail = n, n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.size++
}

// InsertAtEnd is O(1) and always succeeds.
func (l *List) InsertAtEnd(city string) {
	n := &node{city: city}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.size++
}

// InsertAtPosition places city so that it ends up at pos. Valid positions are
// 1 through Size()+1; anything else returns false and changes nothing.
func (l *List) InsertAtPosition(city string, pos int) bool {
	if pos < 1 || pos > l.size+1 {
		return false
	}
	if pos == 1 {
		l.InsertAtBeginning(city)
		return true
	}
	if pos == l.size+1 {
		l.InsertAtEnd(city)
		return true
	}

	cur := l.head
	for i := 1; i < pos-1; i++ {
		cur = cur.next
	}
	n := &node{city: city, prev: cur, next: cur.next}
	cur.next.prev = n
	cur.next = n
	l.size++
	return true
}

// DeleteAtBeginning returns false on an empty list.
func (l *List) DeleteAtBeginning() bool {
	if l.head == nil {
		return false
	}
	if l.head == l.tail {
		l.head, l.tail = nil, nil
	} else {
		old := l.head
		l.head = old.next
		l.head.prev = nil
		old.next = nil
	}
	l.size--
	return true
}

// DeleteAtEnd returns false on an empty list.
func (l *List) DeleteAtEnd() bool {
	if l.tail == nil {
		return false
	}
	if l.head == l.tail {
		l.head, l.tail = nil, nil
	} else {
		old := l.tail
		l.tail = old.prev
		l.tail.next = nil
		old.prev = nil
	}
	l.size--
	return true
}

// DeleteAtPosition removes the city at pos, 1 through Size(). Out of range
// returns false and changes nothing.
func (l *List) DeleteAtPosition(pos int) bool {
	if pos < 1 || pos > l.size {
		return false
	}
	if pos == 1 {
		return l.DeleteAtBeginning()
	}
	if pos == l.size {
		return l.DeleteAtEnd()
	}

	cur := l.head
	for i := 1; i < pos; i++ {
		cur = cur.next
	}
	cur.prev.next = cur.next
	cur.next.prev = cur.prev
	cur.prev, cur.next = nil, nil
	l.size--
	return true
}

// ToList returns the cities from head to tail.
func (l *List) ToList() []string {
	out := make([]string, 0, l.size)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.city)
	}
	return out
}

// Backward returns the cities from tail to head.
func (l *List) Backward() []string {
	out := l.ToList()
	slices.Reverse(out)
	return out
}

func (l *List) DisplayForward() string  { return strings.Join(l.ToList(), arrow) }
func (l *List) DisplayBackward() string { return strings.Join(l.Backward(), arrow) }

func (l *List) Size() int { return l.size }

// MiddleCity walks a slow and a fast cursor from the head. For n cities it
// lands on zero-based index n/2, the later of the two middles when n is even.
func (l *List) MiddleCity() string {
	if l.head == nil {
		return EmptyMiddle
	}
	slow, fast := l.head, l.head
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	return slow.city
}
