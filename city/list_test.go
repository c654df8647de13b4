package city

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkLinks asserts the structural invariants after every mutation.
func checkLinks(t *testing.T, l *List) {
	t.Helper()
	if l.size == 0 {
		require.Nil(t, l.head)
		require.Nil(t, l.tail)
		return
	}
	require.NotNil(t, l.head)
	require.NotNil(t, l.tail)
	require.Nil(t, l.head.prev)
	require.Nil(t, l.tail.next)

	count := 0
	var last *node
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.next != nil {
			require.Same(t, cur, cur.next.prev)
		}
		if cur.prev != nil {
			require.Same(t, cur, cur.prev.next)
		}
		last = cur
		count++
	}
	require.Same(t, l.tail, last)
	require.Equal(t, l.size, count)
}

func build(t *testing.T, cities ...string) *List {
	t.Helper()
	l := New()
	for _, c := range cities {
		l.InsertAtEnd(c)
	}
	checkLinks(t, l)
	return l
}

func TestScenarioInsertThenMiddle(t *testing.T) {
	l := New()
	l.InsertAtBeginning("Lusaka")
	l.InsertAtEnd("Ndola")
	require.True(t, l.InsertAtPosition("Kitwe", 2))
	checkLinks(t, l)

	assert.Equal(t, []string{"Lusaka", "Kitwe", "Ndola"}, l.ToList())
	assert.Equal(t, "Kitwe", l.MiddleCity())
	assert.Equal(t, 3, l.Size())
}

func TestInsertAtBeginningAndEnd(t *testing.T) {
	l := New()
	l.InsertAtEnd("Kabwe")
	checkLinks(t, l)
	l.InsertAtBeginning("Choma")
	checkLinks(t, l)
	l.InsertAtEnd("Mongu")
	checkLinks(t, l)
	assert.Equal(t, []string{"Choma", "Kabwe", "Mongu"}, l.ToList())
}

func TestInsertAtPosition(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		ok   bool
		want []string
	}{
		{"front", 1, true, []string{"X", "A", "B", "C"}},
		{"second", 2, true, []string{"A", "X", "B", "C"}},
		{"third", 3, true, []string{"A", "B", "X", "C"}},
		{"append", 4, true, []string{"A", "B", "C", "X"}},
		{"past end", 5, false, []string{"A", "B", "C"}},
		{"far past end", 10, false, []string{"A", "B", "C"}},
		{"zero", 0, false, []string{"A", "B", "C"}},
		{"negative", -1, false, []string{"A", "B", "C"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := build(t, "A", "B", "C")
			assert.Equal(t, tc.ok, l.InsertAtPosition("X", tc.pos))
			checkLinks(t, l)
			assert.Equal(t, tc.want, l.ToList())
			assert.Equal(t, len(tc.want), l.Size())
		})
	}
}

func TestInsertAtPositionEmpty(t *testing.T) {
	l := New()
	assert.False(t, l.InsertAtPosition("A", 2))
	checkLinks(t, l)
	assert.True(t, l.InsertAtPosition("A", 1))
	checkLinks(t, l)
	assert.Equal(t, []string{"A"}, l.ToList())
}

func TestDeleteAtBeginningAndEnd(t *testing.T) {
	l := New()
	assert.False(t, l.DeleteAtBeginning())
	assert.False(t, l.DeleteAtEnd())
	checkLinks(t, l)

	l.InsertAtEnd("A")
	assert.True(t, l.DeleteAtEnd())
	checkLinks(t, l)
	assert.Zero(t, l.Size())

	l.InsertAtEnd("A")
	assert.True(t, l.DeleteAtBeginning())
	checkLinks(t, l)

	l = build(t, "A", "B", "C")
	assert.True(t, l.DeleteAtBeginning())
	checkLinks(t, l)
	assert.True(t, l.DeleteAtEnd())
	checkLinks(t, l)
	assert.Equal(t, []string{"B"}, l.ToList())
}

func TestDeleteAtPosition(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		ok   bool
		want []string
	}{
		{"first", 1, true, []string{"B", "C", "D"}},
		{"second", 2, true, []string{"A", "C", "D"}},
		{"third", 3, true, []string{"A", "B", "D"}},
		{"last", 4, true, []string{"A", "B", "C"}},
		{"past end", 5, false, []string{"A", "B", "C", "D"}},
		{"zero", 0, false, []string{"A", "B", "C", "D"}},
		{"negative", -3, false, []string{"A", "B", "C", "D"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := build(t, "A", "B", "C", "D")
			assert.Equal(t, tc.ok, l.DeleteAtPosition(tc.pos))
			checkLinks(t, l)
			assert.Equal(t, tc.want, l.ToList())
		})
	}

	t.Run("empty", func(t *testing.T) {
		l := New()
		assert.False(t, l.DeleteAtPosition(1))
		checkLinks(t, l)
	})
}

func TestMiddleCity(t *testing.T) {
	assert.Equal(t, EmptyMiddle, New().MiddleCity())

	all := []string{"A", "B", "C", "D", "E", "F", "G"}
	for n := 1; n <= len(all); n++ {
		l := build(t, all[:n]...)
		assert.Equal(t, all[n/2], l.MiddleCity(), "n=%d", n)
	}
}

func TestDisplay(t *testing.T) {
	l := build(t, "Lusaka", "Kitwe", "Ndola")
	assert.Equal(t, "Lusaka -> Kitwe -> Ndola", l.DisplayForward())
	assert.Equal(t, "Ndola -> Kitwe -> Lusaka", l.DisplayBackward())
	assert.Equal(t, []string{"Ndola", "Kitwe", "Lusaka"}, l.Backward())
	assert.Equal(t, []string{"Lusaka", "Kitwe", "Ndola"}, l.ToList())

	empty := New()
	assert.Empty(t, empty.DisplayForward())
	assert.Empty(t, empty.DisplayBackward())
	assert.Empty(t, empty.ToList())
}

func TestMixedSequenceKeepsInvariants(t *testing.T) {
	var l List
	steps := []func(){
		func() { l.InsertAtEnd("A") },
		func() { l.InsertAtPosition("B", 1) },
		func() { l.InsertAtPosition("C", 2) },
		func() { l.DeleteAtPosition(3) },
		func() { l.InsertAtPosition("D", 3) },
		func() { l.DeleteAtPosition(2) },
		func() { l.DeleteAtBeginning() },
		func() { l.DeleteAtEnd() },
		func() { l.DeleteAtEnd() },
		func() { l.InsertAtBeginning("E") },
	}
	for _, step := range steps {
		step()
		checkLinks(t, &l)
	}
	assert.Equal(t, []string{"E"}, l.ToList())
}
