// Package classify decides, once per member, what kind of synthesis a
// contract property needs.
package classify

import (
	"strings"

	"docfixer/internal/data/contract"
)

type Kind int

const (
	// Plain members carry no field annotation. They only matter when the
	// declaring type's event bindings name them.
	Plain Kind = iota
	// FieldOnly members are backed by a native symbol constant.
	FieldOnly
	// Notification members are field-backed and also carry a notification
	// annotation; notification synthesis runs after field synthesis.
	Notification
)

func (k Kind) String() string {
	switch k {
	case FieldOnly:
		return "field"
	case Notification:
		return "notification"
	default:
		return "plain"
	}
}

// Result is the classification of one property.
type Result struct {
	Kind     Kind
	Property *contract.Property
	// Symbol is the native symbol name of the field annotation.
	Symbol string
	// StringConstant reports whether the property returns the platform's
	// string-constant type.
	StringConstant bool
	// NotificationName is set when the property is a string constant whose
	// symbol ends in the notification suffix. Such members are candidates for
	// prose mined from the external corpus.
	NotificationName bool
	EventArgs        *contract.Type
}

func (r Result) IsFieldBacked() bool {
	return r.Kind == FieldOnly || r.Kind == Notification
}

// Classifier is pure: it holds only the naming rule and the string-constant
// capability.
type Classifier struct {
	suffix        string
	isStringConst func(string) bool
}

func New(notificationSuffix string, isStringConstant func(returnType string) bool) *Classifier {
	if isStringConstant == nil {
		isStringConstant = func(string) bool { return false }
	}
	return &Classifier{suffix: notificationSuffix, isStringConst: isStringConstant}
}

func (c *Classifier) Classify(p *contract.Property) Result {
	r := Result{Kind: Plain, Property: p}
	if p.Field == nil {
		return r
	}

	r.Kind = FieldOnly
	r.Symbol = p.Field.SymbolName
	r.StringConstant = c.isStringConst(p.ReturnType)
	r.NotificationName = r.StringConstant && strings.HasSuffix(r.Symbol, c.suffix)

	if p.Notification != nil {
		r.Kind = Notification
		r.EventArgs = p.Notification.EventArgs
	}
	return r
}

// Eligible returns the properties of t that get a strongly typed observer on
// the companion class: those with both a field and a notification annotation.
func Eligible(t *contract.Type) []*contract.Property {
	var out []*contract.Property
	for _, p := range t.Properties {
		if p.Field != nil && p.Notification != nil {
			out = append(out, p)
		}
	}
	return out
}

// ObserveName turns "FooNotification" into "ObserveFoo". Names without the
// suffix keep their full text.
func ObserveName(memberName, suffix, prefix string) string {
	return prefix + strings.TrimSuffix(memberName, suffix)
}
