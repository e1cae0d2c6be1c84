package synth

import (
	"strings"

	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/doctree"
	"docfixer/internal/engine/classify"
	"docfixer/internal/shared/observability"
)

// ProcessField handles a field-backed member. Outside merge mode, and for
// symbols that are not notification names, the member's docs are left as
// they are. In merge mode the mined section's first paragraph becomes the
// summary and the rest, plus any example the node already had, the remarks.
func (s *Synthesizer) ProcessField(t *contract.Type, tree *doctree.Tree, r classify.Result) error {
	member := tree.Member(r.Property.Name)
	if member == nil {
		return s.stale(t, r.Property.Name, "field")
	}
	observability.MembersProcessedTotal.WithLabelValues(classify.FieldOnly.String()).Inc()

	if !s.cfg.Merge.Enabled || s.miner == nil || !s.notificationSymbol(r, member) {
		return nil
	}

	section, ok := s.miner.ExtractProse(t, r.Symbol)
	if !ok || len(section.Paragraphs) == 0 {
		s.log.Warn("failed to load docs", "type", t.Name, "symbol", r.Symbol)
		observability.SkipsTotal.WithLabelValues(string(errors.CodeExternalMergeMiss)).Inc()
		err := errors.New(errors.CodeExternalMergeMiss, "no prose in corpus")
		err = errors.AddContext(err, errors.CtxType, t.FullName())
		return errors.AddContext(err, errors.CtxSymbol, r.Symbol)
	}

	docs := member.Docs()
	example := docs.Example(toolRemarkID)

	doctree.SetText(docs.Summary(), section.Paragraphs[0])

	remarks := docs.Remarks()
	doctree.Clear(remarks)
	for _, p := range section.Paragraphs[1:] {
		remarks.AddChild(doctree.Para(doctree.Text(p)))
	}
	switch {
	case example != nil:
		remarks.AddChild(example)
	case section.Example != "":
		remarks.AddChild(doctree.CodeExample("objc", section.Example))
	}
	observability.MergedTotal.Inc()
	return nil
}

// notificationSymbol reports whether r names a notification. Contracts that
// omit the property type fall back to the ReturnType recorded in the docs.
func (s *Synthesizer) notificationSymbol(r classify.Result, member *doctree.Member) bool {
	if r.NotificationName {
		return true
	}
	if strings.TrimSpace(r.Property.ReturnType) != "" || !strings.HasSuffix(r.Symbol, s.cfg.Naming.NotificationSuffix) {
		return false
	}
	return s.isStringConst(member.ReturnType())
}
