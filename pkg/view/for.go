package view

import "slices"

// ForIndex renders one child per item with position as the implicit key.
// Updates walk old and new sequences pairwise: shared positions update the
// retained state in place, surplus tail state is razed, shortfall is built
// fresh. No reordering ever occurs, so this is O(n) and appropriate when
// item identity is positional.
func ForIndex[T any](items []T, each func(item T, index int) View) View {
	return forIndexView[T]{items: items, each: each}
}

type forIndexView[T any] struct {
	items []T
	each  func(item T, index int) View
}

type forIndexState struct {
	slots []childSlot
}

func (v forIndexView[T]) Build(cx *Cx) any {
	st := &forIndexState{slots: make([]childSlot, len(v.items))}
	for i, item := range v.items {
		st.slots[i] = buildSlot(cx, v.each(item, i))
	}
	return st
}

func (v forIndexView[T]) Update(cx *Cx, state any) {
	st := state.(*forIndexState)
	st.slots = reconcileSlots(cx, st.slots, len(v.items), func(i int) View {
		return v.each(v.items[i], i)
	})
}

func (v forIndexView[T]) Assemble(cx *Cx, state any) NodeSpan {
	return assembleFragment(cx, state.(*forIndexState).slots)
}

func (v forIndexView[T]) Nodes(cx *Cx, state any) NodeSpan {
	return fragmentNodes(cx, state.(*forIndexState).slots)
}

func (v forIndexView[T]) Raze(cx *Cx, state any) {
	st := state.(*forIndexState)
	for i := range st.slots {
		razeSlot(cx, &st.slots[i])
	}
	st.slots = nil
}

// ForKeyed renders one child per item, keyed by key(item). Updates match
// old and new key sequences by longest common subsequence, then claim the
// remaining old entries by key: items keep their retained state (and with
// it atom values, drag state, and the rest) across reorders, insertions
// and deletions. Only keys absent from the new list are razed.
//
// Duplicate keys within one list are not deduplicated: matching is by scan
// order, first occurrence wins.
func ForKeyed[T any, K comparable](items []T, key func(T) K, each func(T) View) View {
	return forKeyedView[T, K]{items: items, key: key, each: each}
}

// ForEach is ForKeyed with the item itself as the key.
func ForEach[T comparable](items []T, each func(T) View) View {
	return ForKeyed(items, func(t T) T { return t }, each)
}

type forKeyedView[T any, K comparable] struct {
	items []T
	key   func(T) K
	each  func(T) View
}

type keyedEntry[K comparable] struct {
	key  K
	slot childSlot
}

type forKeyedState[K comparable] struct {
	entries []keyedEntry[K]
}

func (v forKeyedView[T, K]) Build(cx *Cx) any {
	st := &forKeyedState[K]{entries: make([]keyedEntry[K], len(v.items))}
	for i, item := range v.items {
		st.entries[i] = keyedEntry[K]{key: v.key(item), slot: buildSlot(cx, v.each(item))}
	}
	return st
}

func (v forKeyedView[T, K]) Update(cx *Cx, state any) {
	st := state.(*forKeyedState[K])

	oldKeys := make([]K, len(st.entries))
	for i, e := range st.entries {
		oldKeys[i] = e.key
	}
	newKeys := make([]K, len(v.items))
	for i, item := range v.items {
		newKeys[i] = v.key(item)
	}

	if slices.Equal(oldKeys, newKeys) {
		for i := range st.entries {
			updateSlot(cx, &st.entries[i].slot, v.each(v.items[i]))
		}
		return
	}
	cx.markStructureChanged()

	// The LCS is the in-place backbone. Old entries outside it are
	// claimable by key, so a reordered item moves its retained state
	// instead of rebuilding; only keys absent from the new list raze.
	matches := lcsMatch(oldKeys, newKeys)
	matchedOld := make([]bool, len(oldKeys))
	matchedNew := make([]int, len(newKeys))
	for i := range matchedNew {
		matchedNew[i] = -1
	}
	for _, m := range matches {
		matchedOld[m.a] = true
		matchedNew[m.b] = m.a
	}
	spare := make(map[K][]int)
	for i := range st.entries {
		if !matchedOld[i] {
			k := st.entries[i].key
			spare[k] = append(spare[k], i)
		}
	}

	claimed := make([]bool, len(oldKeys))
	next := make([]keyedEntry[K], len(v.items))
	for j, item := range v.items {
		oi := matchedNew[j]
		if oi < 0 {
			if q := spare[newKeys[j]]; len(q) > 0 {
				oi = q[0]
				spare[newKeys[j]] = q[1:]
				claimed[oi] = true
			}
		}
		if oi >= 0 {
			entry := st.entries[oi]
			entry.key = newKeys[j]
			updateSlot(cx, &entry.slot, v.each(item))
			next[j] = entry
		} else {
			next[j] = keyedEntry[K]{key: newKeys[j], slot: buildSlot(cx, v.each(item))}
		}
	}
	for i := range st.entries {
		if !matchedOld[i] && !claimed[i] {
			razeSlot(cx, &st.entries[i].slot)
		}
	}
	st.entries = next
}

func (v forKeyedView[T, K]) Assemble(cx *Cx, state any) NodeSpan {
	st := state.(*forKeyedState[K])
	spans := make([]NodeSpan, len(st.entries))
	for i := range st.entries {
		spans[i] = assembleSlot(cx, &st.entries[i].slot)
	}
	return FragmentOf(spans...)
}

func (v forKeyedView[T, K]) Nodes(cx *Cx, state any) NodeSpan {
	st := state.(*forKeyedState[K])
	spans := make([]NodeSpan, len(st.entries))
	for i := range st.entries {
		spans[i] = slotNodes(cx, &st.entries[i].slot)
	}
	return FragmentOf(spans...)
}

func (v forKeyedView[T, K]) Raze(cx *Cx, state any) {
	st := state.(*forKeyedState[K])
	for i := range st.entries {
		razeSlot(cx, &st.entries[i].slot)
	}
	st.entries = nil
}

type matchPair struct {
	a, b int
}

// lcsMatch returns the index pairs of a longest common subsequence of a
// and b, in order. Common prefix and suffix are peeled off first; the
// middle runs the classic dynamic program, with ties broken by scan order
// so the first LCS found wins.
func lcsMatch[K comparable](a, b []K) []matchPair {
	start := 0
	for start < len(a) && start < len(b) && a[start] == b[start] {
		start++
	}
	endA, endB := len(a), len(b)
	for endA > start && endB > start && a[endA-1] == b[endB-1] {
		endA--
		endB--
	}

	var out []matchPair
	for i := 0; i < start; i++ {
		out = append(out, matchPair{a: i, b: i})
	}
	out = append(out, lcsMiddle(a[start:endA], b[start:endB], start)...)
	for i := 0; endA+i < len(a); i++ {
		out = append(out, matchPair{a: endA + i, b: endB + i})
	}
	return out
}

func lcsMiddle[K comparable](a, b []K, offset int) []matchPair {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	// lengths[i][j] is the LCS length of a[i:] and b[j:].
	lengths := make([][]int, len(a)+1)
	for i := range lengths {
		lengths[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lengths[i][j] = lengths[i+1][j+1] + 1
			} else {
				lengths[i][j] = max(lengths[i+1][j], lengths[i][j+1])
			}
		}
	}
	var out []matchPair
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, matchPair{a: offset + i, b: offset + j})
			i++
			j++
		case lengths[i+1][j] >= lengths[i][j+1]:
			i++
		default:
			j++
		}
	}
	return out
}
