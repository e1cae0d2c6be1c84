package synth

import (
	"docfixer/internal/data/contract"
	"docfixer/internal/data/doctree"
	"docfixer/internal/shared/observability"
)

// PopulateEvents documents the members surfaced from t's event-delegate
// bindings. It returns how many members were written and how many had no
// documentation node.
func (s *Synthesizer) PopulateEvents(t *contract.Type, tree *doctree.Tree) (updated, missing int) {
	if !t.HasEvents() {
		return 0, 0
	}
	for i, del := range t.BaseType.Events {
		if i >= len(t.BaseType.Delegates) {
			s.log.Warn("event binding has no delegate property", "type", t.FullName(), "delegate", del.FullName())
			continue
		}
		evtName := t.BaseType.Delegates[i]
		for _, m := range del.Methods {
			member := tree.Member(m.Name)
			if member == nil {
				s.log.Warn("documentation not up to date", "delegate", del.FullName(), "member", m.Name)
				missing++
				continue
			}

			docs := member.Docs()
			if m.IsVoid() {
				doctree.SetText(docs.Summary(), "Event raised by the object.")
				doctree.SetText(docs.Remarks(), "If you assign a value to this event, this will reset the value for the "+evtName+" property to an internal handler that maps delegates to events.")
			} else {
				doctree.SetText(docs.Summary(), "Delegate invoked by the object to get a value.")
				doctree.SetText(docs.Remarks(), "You assign a function, delegate or anonymous method to this property to return a value to the object. If you assign a value to this property, this will reset the value for the "+evtName+" property to an internal handler that maps delegates to events.")
			}
			updated++
		}
	}
	observability.EventsSynthesizedTotal.Add(float64(updated))
	return updated, missing
}
