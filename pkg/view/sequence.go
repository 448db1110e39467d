package view

// Sequence composes children into one view without a display node of its
// own; its span is the fragment of the children's spans in declaration
// order.
func Sequence(children ...View) View {
	return seqView{children: children}
}

type seqView struct {
	children []View
}

type seqState struct {
	slots []childSlot
}

func (v seqView) Build(cx *Cx) any {
	st := &seqState{slots: make([]childSlot, len(v.children))}
	for i, c := range v.children {
		st.slots[i] = buildSlot(cx, c)
	}
	return st
}

func (v seqView) Update(cx *Cx, state any) {
	st := state.(*seqState)
	st.slots = reconcileSlots(cx, st.slots, len(v.children), func(i int) View {
		return v.children[i]
	})
}

func (v seqView) Assemble(cx *Cx, state any) NodeSpan {
	st := state.(*seqState)
	return assembleFragment(cx, st.slots)
}

func (v seqView) Nodes(cx *Cx, state any) NodeSpan {
	st := state.(*seqState)
	return fragmentNodes(cx, st.slots)
}

func (v seqView) Raze(cx *Cx, state any) {
	st := state.(*seqState)
	for i := range st.slots {
		razeSlot(cx, &st.slots[i])
	}
	st.slots = nil
}

// reconcileSlots walks retained slots and the new child list pairwise by
// position: shared positions update in place, surplus old slots are razed,
// shortfall is built fresh. Arity changes mark the structure changed.
func reconcileSlots(cx *Cx, slots []childSlot, n int, childAt func(int) View) []childSlot {
	shared := min(len(slots), n)
	for i := 0; i < shared; i++ {
		updateSlot(cx, &slots[i], childAt(i))
	}
	if len(slots) == n {
		return slots
	}
	cx.markStructureChanged()
	for i := n; i < len(slots); i++ {
		razeSlot(cx, &slots[i])
	}
	if len(slots) > n {
		return slots[:n]
	}
	for i := len(slots); i < n; i++ {
		slots = append(slots, buildSlot(cx, childAt(i)))
	}
	return slots
}

func assembleFragment(cx *Cx, slots []childSlot) NodeSpan {
	spans := make([]NodeSpan, len(slots))
	for i := range slots {
		spans[i] = assembleSlot(cx, &slots[i])
	}
	return FragmentOf(spans...)
}

func fragmentNodes(cx *Cx, slots []childSlot) NodeSpan {
	spans := make([]NodeSpan, len(slots))
	for i := range slots {
		spans[i] = slotNodes(cx, &slots[i])
	}
	return FragmentOf(spans...)
}
