package synth

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
)

var usageTemplate = template.Must(template.New("usage").Parse(`
//
// Lambda style
//

// listening
notification = {{.Type}}.Notifications.{{.Method}} ((sender, args) => {
    /* Access strongly typed args */
{{.Body}}
});

// To stop listening:
notification.Dispose ();

//
// Method style
//
NSObject notification;
void Callback (object sender, {{.ArgsType}} args)
{
    // Access strongly typed args
{{.Body}}
}

void Setup ()
{
    notification = {{.Type}}.Notifications.{{.Method}} (Callback);
}

void Teardown ()
{
    notification.Dispose ();
}`))

type usageData struct {
	Type     string
	Method   string
	ArgsType string
	Body     string
}

// ExampleBody is the callback body shown in usage examples: the notification
// name, then one line per property of the event-args type, if any.
func ExampleBody(eventArgs *contract.Type) string {
	var sb strings.Builder
	sb.WriteString(`    Console.WriteLine("Notification: {0}", args.Notification);`)
	if eventArgs != nil {
		sb.WriteString("\n")
		for _, p := range eventArgs.PublicProperties() {
			fmt.Fprintf(&sb, "\n    Console.WriteLine(\"%s: {0}\", args.%s);", p.Name, p.Name)
		}
	}
	return sb.String()
}

// usageExample renders the two subscription idioms (inline handler and named
// method), each unsubscribing by disposal.
func (s *Synthesizer) usageExample(t *contract.Type, method string, eventArgs *contract.Type, body string) (string, error) {
	argsType := "NSNotificationEventArgs"
	if eventArgs != nil {
		argsType = eventArgs.ShortName()
	}
	var buf bytes.Buffer
	err := usageTemplate.Execute(&buf, usageData{
		Type:     t.ShortName(),
		Method:   method,
		ArgsType: argsType,
		Body:     body,
	})
	if err != nil {
		err = errors.Wrap(err, errors.CodeInternal, "render usage example")
		return "", errors.AddContext(err, errors.CtxType, t.FullName())
	}
	return buf.String(), nil
}
