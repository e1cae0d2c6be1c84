// Package contract models the binding contract metadata that is erased when
// the generated assembly is compiled: which properties are backed by native
// symbol constants, which are notification names, and which delegate types
// back a type's events.
package contract

import "strings"

// Type is one contract type. Name is relative to Namespace and uses '+' for
// nesting, matching the on-disk documentation file names.
type Type struct {
	Namespace  string
	Name       string
	BaseType   *BaseType
	Properties []*Property
	Methods    []*Method
}

// BaseType is the binding annotation of a type. Events and Delegates are
// parallel: Events[i] is an event-delegate type whose methods surface as
// events, Delegates[i] the property that routes them.
type BaseType struct {
	Events    []*Type
	Delegates []string
}

// Property is a Member Descriptor: a documentable property and the contract
// annotations attached to it.
type Property struct {
	Name          string
	DeclaringType *Type
	ReturnType    string
	Field         *FieldAnnotation
	Notification  *NotificationAnnotation
}

// FieldAnnotation links a property to a native symbol constant.
type FieldAnnotation struct {
	SymbolName string
}

// NotificationAnnotation marks a property as a posted notification name.
// EventArgs is nil when the notification carries no strongly typed payload.
type NotificationAnnotation struct {
	EventArgs *Type
}

type Method struct {
	Name       string
	ReturnType string
}

func (t *Type) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// ShortName is the innermost type name, without namespace or nesting.
func (t *Type) ShortName() string {
	if i := strings.LastIndex(t.Name, "+"); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

func (t *Type) String() string {
	return t.FullName()
}

// PublicProperties returns the properties exposed by an event-args type, in
// declaration order.
func (t *Type) PublicProperties() []*Property {
	if t == nil {
		return nil
	}
	return t.Properties
}

// HasEvents reports whether the type declares event-delegate bindings.
func (t *Type) HasEvents() bool {
	return t.BaseType != nil && len(t.BaseType.Events) > 0
}

func (m *Method) IsVoid() bool {
	switch strings.TrimSpace(m.ReturnType) {
	case "", "void", "System.Void":
		return true
	}
	return false
}
