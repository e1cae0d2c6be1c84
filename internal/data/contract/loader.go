package contract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"docfixer/internal/core/errors"

	"gopkg.in/yaml.v3"
)

type manifest struct {
	Types []typeSpec `yaml:"types"`
}

type typeSpec struct {
	Namespace  string         `yaml:"namespace"`
	Name       string         `yaml:"name"`
	BaseType   *baseTypeSpec  `yaml:"base_type"`
	Properties []propertySpec `yaml:"properties"`
	Methods    []methodSpec   `yaml:"methods"`
}

type baseTypeSpec struct {
	Events    []string `yaml:"events"`
	Delegates []string `yaml:"delegates"`
}

type propertySpec struct {
	Name         string            `yaml:"name"`
	Type         string            `yaml:"type"`
	Field        string            `yaml:"field"`
	Notification *notificationSpec `yaml:"notification"`
}

type notificationSpec struct {
	EventArgs string `yaml:"event_args"`
}

type methodSpec struct {
	Name    string `yaml:"name"`
	Returns string `yaml:"returns"`
}

// LoadFile reads a YAML contract manifest from disk.
func LoadFile(path string) (*Assembly, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInvalidContract, "read contract"), errors.CtxPath, path)
	}
	a, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return a, nil
}

// Load decodes a manifest and resolves every type reference in it. References
// that do not resolve are contract errors: the run would otherwise synthesize
// examples against a type it knows nothing about.
func Load(r io.Reader) (*Assembly, error) {
	var m manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.CodeInvalidContract, "decode contract")
	}

	a := NewAssembly()
	for i, ts := range m.Types {
		name := strings.TrimSpace(ts.Name)
		if name == "" {
			return nil, errors.New(errors.CodeInvalidContract, fmt.Sprintf("types[%d].name must not be empty", i))
		}
		t := &Type{Namespace: strings.TrimSpace(ts.Namespace), Name: name}
		if _, dup := a.Lookup(t.FullName()); dup {
			return nil, errors.New(errors.CodeInvalidContract, fmt.Sprintf("duplicate type %q", t.FullName()))
		}
		a.add(t)
	}

	for i, ts := range m.Types {
		t := a.types[i]
		if err := resolveType(a, t, ts); err != nil {
			return nil, errors.AddContext(err, errors.CtxType, t.FullName())
		}
	}
	return a, nil
}

func resolveType(a *Assembly, t *Type, ts typeSpec) error {
	seen := make(map[string]bool, len(ts.Properties))
	for _, ps := range ts.Properties {
		if ps.Name == "" {
			return errors.New(errors.CodeInvalidContract, "property name must not be empty")
		}
		if seen[ps.Name] {
			return errors.New(errors.CodeInvalidContract, fmt.Sprintf("duplicate property %q", ps.Name))
		}
		seen[ps.Name] = true

		p := &Property{Name: ps.Name, DeclaringType: t, ReturnType: ps.Type}
		if ps.Field != "" {
			p.Field = &FieldAnnotation{SymbolName: ps.Field}
		}
		if ps.Notification != nil {
			p.Notification = &NotificationAnnotation{}
			if ps.Notification.EventArgs != "" {
				args, ok := a.Lookup(ps.Notification.EventArgs)
				if !ok {
					return errors.New(errors.CodeInvalidContract, fmt.Sprintf("property %q: unknown event_args type %q", ps.Name, ps.Notification.EventArgs))
				}
				p.Notification.EventArgs = args
			}
		}
		t.Properties = append(t.Properties, p)
	}

	for _, ms := range ts.Methods {
		if ms.Name == "" {
			return errors.New(errors.CodeInvalidContract, "method name must not be empty")
		}
		t.Methods = append(t.Methods, &Method{Name: ms.Name, ReturnType: ms.Returns})
	}

	if ts.BaseType == nil {
		return nil
	}
	if len(ts.BaseType.Events) != len(ts.BaseType.Delegates) {
		return errors.New(errors.CodeInvalidContract, fmt.Sprintf("base_type lists %d events but %d delegates", len(ts.BaseType.Events), len(ts.BaseType.Delegates)))
	}
	bt := &BaseType{Delegates: ts.BaseType.Delegates}
	for _, ev := range ts.BaseType.Events {
		del, ok := a.Lookup(ev)
		if !ok {
			return errors.New(errors.CodeInvalidContract, fmt.Sprintf("unknown event delegate type %q", ev))
		}
		bt.Events = append(bt.Events, del)
	}
	t.BaseType = bt
	return nil
}
