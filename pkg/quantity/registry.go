package quantity

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// registry maps function tags to concrete types and back.
var registry = struct {
	sync.RWMutex
	byTag  map[string]reflect.Type
	byType map[reflect.Type]string
}{
	byTag:  make(map[string]reflect.Type),
	byType: make(map[reflect.Type]string),
}

func init() {
	Register("Linear", (*Linear)(nil))
	Register("Polynomial", (*Polynomial)(nil))
	Register("FirstOrderTaylor", (*FirstOrderTaylor)(nil))
	Register("Exponential", (*Exponential)(nil))
	Register("Clamped", (*Clamped)(nil))
}

// Register makes the concrete type of proto persistable under tag. proto is
// only used for its type; a typed nil pointer is fine.
//
// Decoding creates a fresh value of that type and decodes the tagged fields
// into it with gopkg.in/yaml.v3, so types that need validation should
// implement yaml.Unmarshaler. Encoding uses yaml.Marshaler / json.Marshaler
// when present.
//
// Register panics if tag is empty or already bound to a different type, or if
// the type is already registered under another tag. It is meant to be called
// from init functions.
func Register(tag string, proto Function) {
	if tag == "" {
		panic("quantity: Register with empty tag")
	}
	if proto == nil {
		panic("quantity: Register with nil prototype")
	}
	t := reflect.TypeOf(proto)

	registry.Lock()
	defer registry.Unlock()

	if existing, ok := registry.byTag[tag]; ok {
		if existing == t {
			return
		}
		panic(fmt.Sprintf("quantity: tag %q already registered for %v", tag, existing))
	}
	if existing, ok := registry.byType[t]; ok {
		panic(fmt.Sprintf("quantity: type %v already registered as %q", t, existing))
	}
	registry.byTag[tag] = t
	registry.byType[t] = tag
}

// Tags returns all registered tags in sorted order.
func Tags() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.byTag))
}

// TagOf returns the tag fn's type is registered under.
func TagOf(fn Function) (string, bool) {
	if fn == nil {
		return "", false
	}
	registry.RLock()
	defer registry.RUnlock()
	tag, ok := registry.byType[reflect.TypeOf(fn)]
	return tag, ok
}

// EncodeFunction returns fn in its externally tagged form, {tag: fn}, ready
// for yaml.Marshal or json.Marshal.
func EncodeFunction(fn Function) (map[string]Function, error) {
	tag, ok := TagOf(fn)
	if !ok {
		return nil, fmt.Errorf("quantity function type %T is not registered", fn)
	}
	return map[string]Function{tag: fn}, nil
}

// MarshalFunctionJSON encodes fn as tagged JSON.
func MarshalFunctionJSON(fn Function) ([]byte, error) {
	enc, err := EncodeFunction(fn)
	if err != nil {
		return nil, err
	}
	return json.Marshal(enc)
}

// MarshalFunctionYAML encodes fn as tagged YAML.
func MarshalFunctionYAML(fn Function) ([]byte, error) {
	enc, err := EncodeFunction(fn)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(enc)
}

// UnmarshalFunction decodes a tagged function from YAML or JSON.
func UnmarshalFunction(data []byte) (Function, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return DecodeFunction(&node)
}

// DecodeFunction decodes a tagged function, {Tag: fields}, from a YAML node.
func DecodeFunction(node *yaml.Node) (Function, error) {
	node = content(node)
	if node == nil || node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return nil, fmt.Errorf("expected a mapping with exactly one function tag")
	}
	tag := node.Content[0].Value
	value := node.Content[1]

	registry.RLock()
	t, ok := registry.byTag[tag]
	registry.RUnlock()
	if !ok {
		return nil, &UnknownTagError{Tag: tag}
	}

	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		value = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: value.Line, Column: value.Column}
	}

	var target reflect.Value
	if t.Kind() == reflect.Pointer {
		target = reflect.New(t.Elem())
	} else {
		target = reflect.New(t)
	}
	if err := value.Decode(target.Interface()); err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	if t.Kind() != reflect.Pointer {
		target = target.Elem()
	}
	return target.Interface().(Function), nil
}

// decodeFields decodes a mapping node into v after checking that its keys
// are exactly the required names.
func decodeFields(node *yaml.Node, v any, required ...string) error {
	return decodeOptionalFields(node, v, required, nil)
}

// decodeOptionalFields is decodeFields with keys that may also be absent.
func decodeOptionalFields(node *yaml.Node, v any, required, optional []string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	seen := make(map[string]bool, len(required))
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !slices.Contains(required, key) && !slices.Contains(optional, key) {
			return fmt.Errorf("line %d: unknown field %q", node.Content[i].Line, key)
		}
		seen[key] = true
	}
	for _, name := range required {
		if !seen[name] {
			return fmt.Errorf("line %d: missing field %q", node.Line, name)
		}
	}
	return node.Decode(v)
}
