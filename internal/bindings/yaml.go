package bindings

import (
	"context"
	"fmt"
	"github.com/bsparks/simple-script/internal/object"
	"github.com/goccy/go-yaml"
	"os"
)

// YAMLFile reads bindings from a YAML document whose top level is a mapping.
// Nested mappings are flattened into dotted names, so
//
//	stage:
//	  vft:
//	    Score: 70
//
// binds stage.vft.Score. Mappings inside sequences become Hash values.
type YAMLFile struct {
	Path string
}

func (y YAMLFile) String() string {
	return fmt.Sprintf("yaml(%s)", y.Path)
}

func (y YAMLFile) Load(ctx context.Context) (map[string]object.Object, error) {
	data, err := os.ReadFile(y.Path)
	if err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}
	return ParseYAML(ctx, data)
}

// ParseYAML flattens a YAML document into bindings.
func ParseYAML(ctx context.Context, data []byte) (map[string]object.Object, error) {
	var doc any
	if err := yaml.UnmarshalContext(ctx, data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("parse bindings: %w", err)
	}

	vals := make(map[string]object.Object)
	switch root := doc.(type) {
	case nil:
		return vals, nil
	case yaml.MapSlice:
		flatten(vals, "", root)
		return vals, nil
	default:
		return nil, fmt.Errorf("parse bindings: top level must be a mapping, got %T", doc)
	}
}

func flatten(vals map[string]object.Object, prefix string, m yaml.MapSlice) {
	for _, item := range m {
		name := prefix + fmt.Sprintf("%v", item.Key)
		if nested, ok := item.Value.(yaml.MapSlice); ok {
			flatten(vals, name+".", nested)
			continue
		}
		vals[name] = fromYAML(item.Value)
	}
}

func fromYAML(v any) object.Object {
	switch x := v.(type) {
	case nil:
		return object.NULL
	case bool:
		if x {
			return object.TRUE
		}
		return object.FALSE
	case int:
		return &object.Number{Value: float64(x)}
	case int64:
		return &object.Number{Value: float64(x)}
	case uint64:
		return &object.Number{Value: float64(x)}
	case float64:
		return &object.Number{Value: x}
	case string:
		return &object.String{Value: x}
	case []any:
		elements := make([]object.Object, 0, len(x))
		for _, e := range x {
			elements = append(elements, fromYAML(e))
		}
		return &object.Array{Elements: elements}
	case yaml.MapSlice:
		hash := object.NewHash()
		for _, item := range x {
			hash.Set(&object.String{Value: fmt.Sprintf("%v", item.Key)}, fromYAML(item.Value))
		}
		return hash
	default:
		return &object.String{Value: fmt.Sprintf("%v", x)}
	}
}
