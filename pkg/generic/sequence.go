package generic

import (
	"fmt"
	"strings"

	"github.com/cheekybits/genny/generic"
	"github.com/pkg/errors"

	"github.com/snwfog/sequence.go/pkg/util"
)

type Value generic.Type

// assertInvariants validates the sequence on entry to and exit from every
// public operation and panics on the first violation. Tests switch it on.
var assertInvariants = false

// region Node
type node struct {
	data Value
	next *node
}

// copychain copies the chain starting at head into fresh nodes. It also
// returns the tail of the copy, and the copies of precursor and cursor if
// they belong to the chain.
func copychain(head, precursor, cursor *node) (h, t, p, c *node) {
	for n := head; n != nil; n = n.next {
		cp := &node{data: n.data}
		if h == nil {
			h = cp
		} else {
			t.next = cp
		}
		t = cp

		if n == precursor {
			p = cp
		}
		if n == cursor {
			c = cp
		}
	}

	return h, t, p, c
}

// endregion

// region ValueSeq

// ValueSeq is a linked sequence of Value with a single current position.
//
// The position is the pair (precursor, cursor). When cursor != precursor
// the cursor is the node after precursor (or head). When they are equal
// the current element was just removed, and the next Advance moves to the
// element that followed it. A ValueSeq is not safe for concurrent use.
type ValueSeq struct {
	count     int
	head      *node
	precursor *node
	cursor    *node
	atEnd     bool
}

// NewValueSeq returns an empty sequence. It is at the end and has no
// current element.
func NewValueSeq() *ValueSeq {
	s := &ValueSeq{atEnd: true}
	s.assert("end of NewValueSeq")
	return s
}

func (s *ValueSeq) Len() int {
	s.assert("start of Len")
	return s.count
}

// AtEnd reports whether the cursor has run off the end of the sequence.
// An empty sequence that was just started is at the end too.
func (s *ValueSeq) AtEnd() bool {
	s.assert("start of AtEnd")
	return s.atEnd
}

func (s *ValueSeq) HasCurrent() bool {
	s.assert("start of HasCurrent")
	return s.current()
}

func (s *ValueSeq) current() bool {
	return s.cursor != s.precursor && s.cursor != nil
}

// Start makes the first element current. On an empty sequence there is no
// current element and the sequence is at the end.
func (s *ValueSeq) Start() {
	s.assert("start of Start")

	s.precursor, s.cursor = nil, s.head
	s.atEnd = s.head == nil

	s.assert("end of Start")
}

// Advance moves to the element after the current one, or after the one
// that was last removed. Past the last element the sequence is at the end.
func (s *ValueSeq) Advance() error {
	s.assert("start of Advance")

	if s.atEnd {
		return util.StateViolation("advancing past the end")
	}

	s.precursor = s.cursor
	if s.cursor == nil {
		s.cursor = s.head
	} else {
		s.cursor = s.cursor.next
	}
	s.atEnd = s.cursor == nil

	s.assert("end of Advance")
	return nil
}

// Current returns the current element. A stored nil is a valid element;
// the error reports that there is no current element at all.
func (s *ValueSeq) Current() (Value, error) {
	s.assert("start of Current")

	if !s.current() {
		return nil, util.StateViolation("no current element")
	}

	return s.cursor.data, nil
}

// InsertBefore adds v before the current element, or in the gap left by a
// removal, or at the end. v becomes the current element.
func (s *ValueSeq) InsertBefore(v Value) {
	s.assert("start of InsertBefore")

	n := &node{data: v}
	if s.precursor == nil {
		n.next = s.head
		s.head = n
	} else {
		n.next = s.precursor.next
		s.precursor.next = n
	}

	s.cursor = n
	s.count++
	s.atEnd = false

	s.assert("end of InsertBefore")
}

// InsertAfter adds v right after the current element. Without a current
// element it behaves as InsertBefore. v becomes the current element.
func (s *ValueSeq) InsertAfter(v Value) {
	s.assert("start of InsertAfter")

	if !s.current() {
		s.InsertBefore(v)
		return
	}

	n := &node{data: v, next: s.cursor.next}
	s.cursor.next = n
	s.precursor, s.cursor = s.cursor, n
	s.count++
	s.atEnd = false

	s.assert("end of InsertAfter")
}

// RemoveCurrent unlinks the current element. Afterwards there is no
// current element, and the sequence is not at the end even if the removed
// element was the last one.
func (s *ValueSeq) RemoveCurrent() error {
	s.assert("start of RemoveCurrent")

	if !s.current() {
		return util.StateViolation("no current to remove")
	}

	removed := s.cursor
	if s.precursor == nil {
		s.head = removed.next
	} else {
		s.precursor.next = removed.next
	}
	removed.next = nil

	s.cursor = s.precursor
	s.count--

	s.assert("end of RemoveCurrent")
	return nil
}

// Append places a copy of other's elements at the end of s. other is left
// untouched and may be s itself. The current element of s, and whether s
// is at the end, do not change.
func (s *ValueSeq) Append(other *ValueSeq) {
	if other == nil {
		panic("other cannot be nil")
	}

	s.assert("start of Append")
	other.assert("start of Append (other)")

	n := other.count
	if n == 0 {
		return
	}

	// Copy before linking: when other == s, splicing its own chain would
	// make the list cyclic.
	head, tail, _, _ := copychain(other.head, nil, nil)

	last := s.tailnode()
	if last == nil {
		s.head = head
	} else {
		last.next = head
	}

	if s.atEnd {
		s.precursor = tail
	} else if s.precursor == last && s.precursor != s.cursor {
		s.cursor = head
	}

	s.count += n

	s.assert("end of Append")
	other.assert("end of Append (other)")
}

// Clone returns an independent copy of s. The copy's current position
// corresponds to the current position of s.
func (s *ValueSeq) Clone() *ValueSeq {
	s.assert("start of Clone")

	c := &ValueSeq{count: s.count, atEnd: s.atEnd}
	c.head, _, c.precursor, c.cursor = copychain(s.head, s.precursor, s.cursor)

	s.assert("end of Clone")
	c.assert("end of Clone (result)")
	return c
}

func (s *ValueSeq) tailnode() *node {
	if s.head == nil {
		return nil
	}

	n := s.head
	for n.next != nil {
		n = n.next
	}

	return n
}

// Validate checks the structural invariants and names the first one that
// does not hold.
func (s *ValueSeq) Validate() error {
	// 1. acyclic (Floyd)
	if s.head != nil {
		fast := s.head.next
		for slow := s.head; fast != nil && fast.next != nil; slow = slow.next {
			if slow == fast {
				return errors.New("invariant 1: chain is cyclic")
			}
			fast = fast.next.next
		}
	}

	// 2. count
	count, foundPrecursor := 0, false
	for n := s.head; n != nil; n = n.next {
		if n == s.precursor {
			foundPrecursor = true
		}
		count++
	}
	if count != s.count {
		return errors.Errorf("invariant 2: count is %d but chain has %d nodes", s.count, count)
	}

	// 3. precursor in chain
	if s.precursor != nil && !foundPrecursor {
		return errors.New("invariant 3: precursor is not in the chain")
	}

	// 4. cursor follows precursor
	if s.cursor != s.precursor {
		if s.precursor == nil && s.cursor != s.head {
			return errors.New("invariant 4: precursor is nil but cursor is not head")
		}
		if s.precursor != nil && s.cursor != s.precursor.next {
			return errors.New("invariant 4: cursor does not follow precursor")
		}
	}

	// 5. at end
	if s.atEnd {
		if s.cursor != nil {
			return errors.New("invariant 5: at end but cursor is set")
		}
		if s.precursor == nil && s.head != nil {
			return errors.New("invariant 5: at end with no precursor but chain is not empty")
		}
	}

	return nil
}

func (s *ValueSeq) assert(where string) {
	if !assertInvariants {
		return
	}

	if err := s.Validate(); err != nil {
		panic(errors.Wrap(err, where))
	}
}

// String renders the sequence as [a, *b, c]. The current element is marked
// with *; without one, | marks the gap the next Advance steps out of.
func (s *ValueSeq) String() string {
	var b strings.Builder
	gap := !s.current()

	first := true
	item := func() {
		if !first {
			b.WriteString(", ")
		}
		first = false
	}

	b.WriteByte('[')
	if gap && s.precursor == nil {
		item()
		b.WriteByte('|')
	}
	for n := s.head; n != nil; n = n.next {
		item()
		if !gap && n == s.cursor {
			b.WriteByte('*')
		}
		fmt.Fprint(&b, n.data)

		if gap && n == s.precursor {
			item()
			b.WriteByte('|')
		}
	}
	b.WriteByte(']')

	return b.String()
}

func (s *ValueSeq) Iterator() *iterator {
	return NewIterator(s)
}

// endregion

// region Iterator

// iterator walks the elements from the head without moving the cursor.
type iterator struct {
	curr *node
}

func NewIterator(s *ValueSeq) *iterator {
	return &iterator{
		curr: s.head,
	}
}

func (it *iterator) Next() (Value, bool) {
	if it.curr == nil {
		return nil, false
	}

	n := it.curr
	it.curr = n.next

	return n.data, true
}

// endregion
