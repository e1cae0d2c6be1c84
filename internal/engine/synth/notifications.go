package synth

import (
	"strings"

	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/doctree"
	"docfixer/internal/engine/classify"
	"docfixer/internal/shared/observability"
)

// ProcessNotification documents a notification member: remarks gain a
// pointer to the strongly typed Observe helper, an introduction and a usage
// example, in that order and ahead of any existing remarks. The companion
// helper class is then brought in sync.
func (s *Synthesizer) ProcessNotification(t *contract.Type, tree *doctree.Tree, r classify.Result) error {
	name := r.Property.Name
	member := tree.Member(name)
	if member == nil {
		return s.stale(t, name, "notification")
	}

	method := s.observeName(name)
	body := ExampleBody(r.EventArgs)
	example, err := s.usageExample(t, method, r.EventArgs, body)
	if err != nil {
		return errors.AddContext(err, errors.CtxMember, name)
	}

	remarks := member.Docs().Remarks()
	if strings.TrimSpace(doctree.InnerText(remarks)) == s.cfg.Naming.Placeholder {
		doctree.Clear(remarks)
	}
	doctree.RemoveTagged(remarks, toolRemarkID)

	companion := t.FullName() + s.cfg.Naming.CompanionSuffix
	doctree.Prepend(remarks,
		doctree.WithID(doctree.Para(
			doctree.Text("If you want to subscribe to this notification, you can use the convenience "),
			doctree.See("T:"+companion),
			doctree.Text("."),
			doctree.See("M:"+companion+"."+method),
			doctree.Text(" method which offers strongly typed access to the parameters of the notification."),
		), toolRemarkID),
		doctree.WithID(doctree.Para(
			doctree.Text("The following example shows how to use the strongly typed Notifications class, to take the guesswork out of the available properties in the notification:"),
		), toolRemarkIntroID),
		doctree.WithID(doctree.CodeExample("c#", example), toolRemarkExampleID),
	)
	observability.MembersProcessedTotal.WithLabelValues(classify.Notification.String()).Inc()

	s.state.RecordUse(r.EventArgs, t)
	return s.DocumentNotificationHelper(t, r.Property, body)
}

func (s *Synthesizer) observeName(member string) string {
	return classify.ObserveName(member, s.cfg.Naming.NotificationSuffix, s.cfg.Naming.ObservePrefix)
}
