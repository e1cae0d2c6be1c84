package synth

import (
	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/doctree"
	"docfixer/internal/engine/classify"
	"docfixer/internal/shared/observability"
)

// DocumentNotificationHelper rewrites the companion "+Notifications" class
// of t. The tree is reloaded on every call and every notification-eligible
// member of t is recomputed, so the saved result does not depend on which
// member triggered the call or on earlier calls. body is the example body
// already built for current.
func (s *Synthesizer) DocumentNotificationHelper(t *contract.Type, current *contract.Property, body string) error {
	eligible := classify.Eligible(t)
	if len(eligible) == 0 {
		return nil
	}

	tree, err := s.locator.Companion(t)
	if err != nil {
		s.log.Error("can not find notification class for type", "type", t.FullName(), "error", err)
		observability.SkipsTotal.WithLabelValues(string(errors.CodeCompanionLoadFailure)).Inc()
		return err
	}

	typeDocs := tree.TypeDocs()
	doctree.SetContent(typeDocs.Summary(),
		doctree.Text("Notification posted by the "),
		doctree.See("T:"+t.FullName()),
		doctree.Text(" class."),
	)
	doctree.SetContent(typeDocs.Remarks(),
		doctree.Para(
			doctree.Text("This is a static class which contains various helper methods that allow developers to observe events posted in the "+s.profile.OSName+" notification hub ("),
			doctree.See("T:"+s.foundation("NSNotificationCenter")),
			doctree.Text(")."),
		),
		doctree.Para(
			doctree.Text("The methods defined in this class invoke the provided method or lambda with a "),
			doctree.See("T:"+s.foundation("NSNotificationEventArgs")),
			doctree.Text(" parameter which contains strongly typed properties for the notification arguments."),
		),
	)

	for _, p := range eligible {
		method := s.observeName(p.Name)
		node := tree.Member(method)
		if node == nil {
			s.log.Debug("companion class has no observer method", "type", t.FullName(), "method", method, "companion", tree.String())
			continue
		}

		eventArgs := p.Notification.EventArgs
		b := body
		if p != current {
			b = ExampleBody(eventArgs)
		}

		example, err := s.usageExample(t, method, eventArgs, b)
		if err != nil {
			return errors.AddContext(err, errors.CtxMember, method)
		}

		docs := node.Docs()
		doctree.SetText(docs.Param("handler"), "Method to invoke when the notification is posted.")
		doctree.SetText(docs.Summary(), "Registers a method to be notified when the "+p.Field.SymbolName+" notification is posted.")
		doctree.SetContent(docs.Returns(),
			doctree.Text("The returned NSObject represents the registered notification. Either call Dispose on the object to stop receiving notifications, or pass it to "),
			doctree.See("M:"+s.foundation("NSNotificationCenter")+".RemoveObserver("+s.foundation("NSObject")+")"),
			doctree.Text("."),
		)
		doctree.SetContent(docs.Remarks(),
			doctree.Para(doctree.Text("The following example shows how you can use this method in your code")),
			doctree.CodeExample("c#", example),
		)
	}

	if err := s.locator.SaveCompanion(t, tree); err != nil {
		s.log.Error("failed to save notification class", "type", t.FullName(), "error", err)
		return errors.AddContext(err, errors.CtxType, t.FullName())
	}
	observability.DocumentsSavedTotal.WithLabelValues("companion").Inc()
	return nil
}
