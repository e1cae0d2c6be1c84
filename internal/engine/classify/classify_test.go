package classify

import (
	"testing"

	"docfixer/internal/data/contract"

	"github.com/stretchr/testify/assert"
)

const nsString = "MonoTouch.Foundation.NSString"

func TestClassify(t *testing.T) {
	args := &contract.Type{Namespace: "MonoTouch.Demo", Name: "BarEventArgs"}
	c := New("Notification", contract.StringConstantPredicate([]string{nsString}))

	tests := []struct {
		name             string
		prop             *contract.Property
		kind             Kind
		notificationName bool
	}{
		{
			name: "plain",
			prop: &contract.Property{Name: "Frame", ReturnType: "System.Drawing.RectangleF"},
			kind: Plain,
		},
		{
			name:             "field with notification-like symbol",
			prop:             &contract.Property{Name: "DidChangeNotification", ReturnType: nsString, Field: &contract.FieldAnnotation{SymbolName: "FooDidChangeNotification"}},
			kind:             FieldOnly,
			notificationName: true,
		},
		{
			name: "field key",
			prop: &contract.Property{Name: "UserInfoKey", ReturnType: nsString, Field: &contract.FieldAnnotation{SymbolName: "FooUserInfoKey"}},
			kind: FieldOnly,
		},
		{
			name: "notification suffix but not a string constant",
			prop: &contract.Property{Name: "Value", ReturnType: "System.Int32", Field: &contract.FieldAnnotation{SymbolName: "FooNotification"}},
			kind: FieldOnly,
		},
		{
			name: "notification",
			prop: &contract.Property{
				Name:         "BarNotification",
				ReturnType:   nsString,
				Field:        &contract.FieldAnnotation{SymbolName: "BarNotificationSymbol"},
				Notification: &contract.NotificationAnnotation{EventArgs: args},
			},
			kind: Notification,
		},
		{
			name: "notification annotation without field stays plain",
			prop: &contract.Property{Name: "LooseNotification", Notification: &contract.NotificationAnnotation{}},
			kind: Plain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := c.Classify(tt.prop)
			assert.Equal(t, tt.kind, r.Kind)
			assert.Equal(t, tt.notificationName, r.NotificationName)
			assert.Equal(t, tt.kind != Plain, r.IsFieldBacked())
			if tt.kind == Notification {
				assert.Same(t, args, r.EventArgs)
			}
		})
	}
}

func TestObserveName(t *testing.T) {
	assert.Equal(t, "ObserveFoo", ObserveName("FooNotification", "Notification", "Observe"))
	assert.Equal(t, "ObserveDidChange", ObserveName("DidChangeNotification", "Notification", "Observe"))
	assert.Equal(t, "ObserveNotificationCenter", ObserveName("NotificationCenter", "Notification", "Observe"))
	assert.Equal(t, "Observe", ObserveName("Notification", "Notification", "Observe"))
}

func TestEligible(t *testing.T) {
	foo := &contract.Type{Name: "Foo", Properties: []*contract.Property{
		{Name: "A", Field: &contract.FieldAnnotation{SymbolName: "A"}},
		{Name: "BNotification", Field: &contract.FieldAnnotation{SymbolName: "B"}, Notification: &contract.NotificationAnnotation{}},
		{Name: "C", Notification: &contract.NotificationAnnotation{}},
	}}

	eligible := Eligible(foo)
	if assert.Len(t, eligible, 1) {
		assert.Equal(t, "BNotification", eligible[0].Name)
	}
	assert.Empty(t, Eligible(&contract.Type{Name: "Empty"}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "plain", Plain.String())
	assert.Equal(t, "field", FieldOnly.String())
	assert.Equal(t, "notification", Notification.String())
}
