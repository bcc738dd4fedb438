package managers

import (
	"github.com/arbordev/arbor/nodes"
	"github.com/arbordev/arbor/plugins"
)

// MergeManager provides a fluent API for building MERGE statements.
// WHEN branches compile in the order they are added.
type MergeManager struct {
	treeManager
	Statement *nodes.MergeStatement
}

// NewMergeManager creates a new MergeManager targeting the given table.
func NewMergeManager(target nodes.Node) *MergeManager {
	return &MergeManager{
		Statement: &nodes.MergeStatement{Target: target},
	}
}

// Using sets the merge source: a table, an aliased subquery, or a table
// function.
func (m *MergeManager) Using(source nodes.Node) *MergeManager {
	m.Statement.Source = source
	return m
}

// On sets the match condition between target and source.
func (m *MergeManager) On(condition nodes.Node) *MergeManager {
	m.Statement.On = condition
	return m
}

// WhenMatchedUpdate adds a WHEN MATCHED THEN UPDATE SET branch.
func (m *MergeManager) WhenMatchedUpdate(assignments ...*nodes.AssignmentNode) *MergeManager {
	m.Statement.Actions = append(m.Statement.Actions, &nodes.MergeAction{
		When:        nodes.WhenMatched,
		Action:      nodes.MergeUpdate,
		Assignments: assignments,
	})
	return m
}

// WhenMatchedUpdateWhere adds a conditional WHEN MATCHED AND cond THEN
// UPDATE SET branch.
func (m *MergeManager) WhenMatchedUpdateWhere(condition nodes.Node, assignments ...*nodes.AssignmentNode) *MergeManager {
	m.Statement.Actions = append(m.Statement.Actions, &nodes.MergeAction{
		When:        nodes.WhenMatched,
		Condition:   condition,
		Action:      nodes.MergeUpdate,
		Assignments: assignments,
	})
	return m
}

// WhenMatchedDelete adds a WHEN MATCHED THEN DELETE branch.
func (m *MergeManager) WhenMatchedDelete() *MergeManager {
	m.Statement.Actions = append(m.Statement.Actions, &nodes.MergeAction{
		When:   nodes.WhenMatched,
		Action: nodes.MergeDelete,
	})
	return m
}

// WhenMatchedDeleteWhere adds a conditional WHEN MATCHED AND cond THEN
// DELETE branch.
func (m *MergeManager) WhenMatchedDeleteWhere(condition nodes.Node) *MergeManager {
	m.Statement.Actions = append(m.Statement.Actions, &nodes.MergeAction{
		When:      nodes.WhenMatched,
		Condition: condition,
		Action:    nodes.MergeDelete,
	})
	return m
}

// WhenMatchedDoNothing adds a WHEN MATCHED THEN DO NOTHING branch.
func (m *MergeManager) WhenMatchedDoNothing() *MergeManager {
	m.Statement.Actions = append(m.Statement.Actions, &nodes.MergeAction{
		When:   nodes.WhenMatched,
		Action: nodes.MergeDoNothing,
	})
	return m
}

// WhenNotMatchedInsert adds a WHEN NOT MATCHED THEN INSERT branch. Raw Go
// values are wrapped with nodes.Literal.
func (m *MergeManager) WhenNotMatchedInsert(cols []nodes.Node, vals ...any) *MergeManager {
	values := make([]nodes.Node, len(vals))
	for i, v := range vals {
		values[i] = nodes.Literal(v)
	}
	m.Statement.Actions = append(m.Statement.Actions, &nodes.MergeAction{
		When:    nodes.WhenNotMatched,
		Action:  nodes.MergeInsert,
		Columns: cols,
		Values:  values,
	})
	return m
}

// WhenNotMatchedDoNothing adds a WHEN NOT MATCHED THEN DO NOTHING branch.
func (m *MergeManager) WhenNotMatchedDoNothing() *MergeManager {
	m.Statement.Actions = append(m.Statement.Actions, &nodes.MergeAction{
		When:   nodes.WhenNotMatched,
		Action: nodes.MergeDoNothing,
	})
	return m
}

// Use registers a transformer plugin.
func (m *MergeManager) Use(t plugins.Transformer) *MergeManager {
	m.addTransformer(t)
	return m
}

// toSQLCore validates the statement, applies transformers, and generates
// SQL.
func (m *MergeManager) toSQLCore(v nodes.Visitor) (string, error) {
	stmt := m.cloneStatement()
	if stmt.Source == nil || stmt.On == nil || len(stmt.Actions) == 0 {
		return "", ErrMergeIncomplete
	}
	for _, t := range m.transformers {
		var err error
		stmt, err = t.TransformMerge(stmt)
		if err != nil {
			return "", err
		}
	}
	return stmt.Accept(v), nil
}

// ToSQL applies transformers and generates SQL with parameters.
func (m *MergeManager) ToSQL(v nodes.Visitor) (string, []any, error) {
	return toSQLParams(v, m.toSQLCore)
}

func (m *MergeManager) cloneStatement() *nodes.MergeStatement {
	actions := make([]*nodes.MergeAction, len(m.Statement.Actions))
	copy(actions, m.Statement.Actions)

	return &nodes.MergeStatement{
		Target:  m.Statement.Target,
		Source:  m.Statement.Source,
		On:      m.Statement.On,
		Actions: actions,
	}
}
