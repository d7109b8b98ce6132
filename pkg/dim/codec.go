package dim

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML writes a dimensionless quantity as a bare number and any other
// quantity as a unit expression string.
func (q Quantity) MarshalYAML() (any, error) {
	if q.Dim.IsNone() {
		return q.Value, nil
	}
	return q.String(), nil
}

// UnmarshalYAML accepts a number (dimensionless) or a unit expression.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: quantity must be a number or a unit expression", node.Line)
	}
	if IsNumberNode(node) {
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*q = Scalar(v)
		return nil
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// MarshalJSON mirrors MarshalYAML.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Dim.IsNone() {
		return json.Marshal(q.Value)
	}
	return json.Marshal(q.String())
}

// UnmarshalJSON accepts a JSON number or a string holding a unit expression.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		*q = Scalar(v)
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	default:
		return fmt.Errorf("quantity must be a number or a unit expression, got %s", data)
	}
}

// IsNumberNode reports whether a YAML scalar resolves to an int or float.
// Quoted scalars are always strings.
func IsNumberNode(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode || node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 {
		return false
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		return true
	}
	return false
}

// FormatValue formats a bare SI value the way String does.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
