// Package permissions answers operator-permission checks for the facade
package permissions

// Oracle reports whether a player holds operator permissions
type Oracle interface {
	IsOperator(playerID string) bool
}

// StaticOracle answers from a fixed operator set, typically loaded from the
// server config
type StaticOracle struct {
	operators map[string]struct{}
}

// NewStatic creates an oracle from a list of operator player ids
func NewStatic(operatorIDs []string) *StaticOracle {
	ops := make(map[string]struct{}, len(operatorIDs))
	for _, id := range operatorIDs {
		ops[id] = struct{}{}
	}
	return &StaticOracle{operators: ops}
}

// Ensure StaticOracle implements Oracle
var _ Oracle = (*StaticOracle)(nil)

// IsOperator reports whether the player id is in the operator set
func (o *StaticOracle) IsOperator(playerID string) bool {
	_, ok := o.operators[playerID]
	return ok
}
