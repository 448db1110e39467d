package view

// Cond renders pos when test is true and neg when false. State is a
// two-variant union: switching the predicate razes the inactive branch's
// state and builds the other, so exactly one branch is ever live.
func Cond(test bool, pos, neg View) View {
	return condView{test: test, pos: pos, neg: neg}
}

type condView struct {
	test bool
	pos  View
	neg  View
}

type condState struct {
	branch bool
	slot   childSlot
}

func (v condView) active() View {
	if v.test {
		return v.pos
	}
	return v.neg
}

func (v condView) Build(cx *Cx) any {
	return &condState{branch: v.test, slot: buildSlot(cx, v.active())}
}

func (v condView) Update(cx *Cx, state any) {
	st := state.(*condState)
	if st.branch == v.test {
		updateSlot(cx, &st.slot, v.active())
		return
	}
	razeSlot(cx, &st.slot)
	st.branch = v.test
	st.slot = buildSlot(cx, v.active())
	cx.markStructureChanged()
}

func (v condView) Assemble(cx *Cx, state any) NodeSpan {
	st := state.(*condState)
	return assembleSlot(cx, &st.slot)
}

func (v condView) Nodes(cx *Cx, state any) NodeSpan {
	st := state.(*condState)
	return slotNodes(cx, &st.slot)
}

func (v condView) Raze(cx *Cx, state any) {
	st := state.(*condState)
	razeSlot(cx, &st.slot)
}
