package config

import (
	"fmt"
	"math"

	"github.com/knadh/koanf/v2"
)

// fieldKind is the semantic type expected at a schema leaf.
type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindInt
	kindFloat
	kindIntSlice
)

func (fk fieldKind) String() string {
	switch fk {
	case kindString:
		return "string"
	case kindBool:
		return "bool"
	case kindInt:
		return "int"
	case kindFloat:
		return "float"
	case kindIntSlice:
		return "list of int"
	default:
		return "unknown"
	}
}

type fieldSpec struct {
	path     string
	kind     fieldKind
	optional bool
}

// topLevelKeys are required at the document root. They are checked before
// leaves so a missing section reports "task", not "task.dataset".
var topLevelKeys = []string{"trainer", "logger", "task", "dataset", "model", "optim"}

// schema lists every leaf this loader knows about. Anything else in the
// document survives the load uninterpreted, in RunConfig.Extra.
var schema = []fieldSpec{
	{path: "trainer", kind: kindString},
	{path: "logger", kind: kindString},
	{path: "task.dataset", kind: kindString},
	{path: "task.description", kind: kindString},
	{path: "task.type", kind: kindString},
	{path: "task.metric", kind: kindString},
	{path: "dataset.train.src", kind: kindString},
	{path: "dataset.val.src", kind: kindString},
	{path: "dataset.test.src", kind: kindString},
	{path: "model.name", kind: kindString},
	{path: "model.cutoff", kind: kindFloat},
	{path: "model.hidden_channels", kind: kindInt},
	{path: "model.num_layers", kind: kindInt},
	{path: "model.num_radial", kind: kindInt},
	{path: "model.regress_forces", kind: kindBool},
	{path: "model.use_pbc", kind: kindBool},
	{path: "model.otf_graph", kind: kindBool},
	{path: "model.output_dim", kind: kindInt},
	{path: "optim.batch_size", kind: kindInt},
	{path: "optim.eval_batch_size", kind: kindInt},
	{path: "optim.num_workers", kind: kindInt},
	{path: "optim.lr_initial", kind: kindFloat},
	{path: "optim.lr_gamma", kind: kindFloat},
	{path: "optim.lr_milestones", kind: kindIntSlice},
	{path: "optim.warmup_steps", kind: kindInt},
	{path: "optim.warmup_factor", kind: kindFloat, optional: true},
	{path: "optim.max_epochs", kind: kindInt},
	{path: "optim.eval_every", kind: kindInt},
}

// checkSchema verifies required keys and leaf types against the merged
// key tree, before any struct decoding happens.
func checkSchema(k *koanf.Koanf) error {
	for _, key := range topLevelKeys {
		if k.Get(key) == nil {
			return missingField(key)
		}
	}
	for _, f := range schema {
		v := k.Get(f.path)
		if v == nil {
			if f.optional {
				continue
			}
			return missingField(f.path)
		}
		if err := checkKind(f.path, f.kind, v); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(path string, kind fieldKind, v any) error {
	switch kind {
	case kindString:
		if _, ok := v.(string); !ok {
			return typeMismatch(path, kind.String(), typeName(v))
		}
	case kindBool:
		if _, ok := v.(bool); !ok {
			return typeMismatch(path, kind.String(), typeName(v))
		}
	case kindInt:
		if !isInt(v) {
			return typeMismatch(path, kind.String(), typeName(v))
		}
	case kindFloat:
		if !isNumber(v) {
			return typeMismatch(path, kind.String(), typeName(v))
		}
	case kindIntSlice:
		items, ok := v.([]interface{})
		if !ok {
			return typeMismatch(path, kind.String(), typeName(v))
		}
		for i, item := range items {
			if !isInt(item) {
				return typeMismatch(fmt.Sprintf("%s[%d]", path, i), "int", typeName(item))
			}
		}
	}
	return nil
}

// isInt reports whether v carries an integral value. YAML scientific
// notation (e.g. 5e9) parses as float64, so integral floats count.
func isInt(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return n == math.Trunc(n)
	default:
		return false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case []interface{}:
		return "list"
	case map[string]interface{}:
		return "mapping"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
