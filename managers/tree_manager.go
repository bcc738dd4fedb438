// Package managers provides high-level fluent APIs for building SQL ASTs.
package managers

import (
	"github.com/arbordev/arbor/nodes"
	"github.com/arbordev/arbor/plugins"
)

// treeManager is the shared base for all manager types. It holds the
// transformer pipeline common to Select, Insert, Update, Delete, and Merge
// managers.
type treeManager struct {
	transformers []plugins.Transformer
}

// addTransformer appends a transformer plugin to the pipeline.
func (tm *treeManager) addTransformer(t plugins.Transformer) {
	tm.transformers = append(tm.transformers, t)
}

// Transformers returns the registered transformer pipeline.
func (tm *treeManager) Transformers() []plugins.Transformer {
	return tm.transformers
}

// toSQLParams resets a compiler (if the visitor is one), calls the provided
// generate function, and returns SQL + params. Generation errors come from
// two places: construction contract violations raised by generate, and
// dialect capability gaps recorded on the compiler while walking the tree.
// Either way the SQL fragment is discarded.
func toSQLParams(v nodes.Visitor, generate func(nodes.Visitor) (string, error)) (string, []any, error) {
	c, _ := v.(nodes.Compiler)
	if c != nil {
		c.Reset()
	}

	sql, err := generate(v)
	if err != nil {
		return "", nil, err
	}

	if c != nil {
		if err := c.Err(); err != nil {
			return "", nil, err
		}
		return sql, c.Params(), nil
	}
	return sql, nil, nil
}
