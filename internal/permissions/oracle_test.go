package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/npc-world-api/internal/permissions"
)

func TestStaticOracle(t *testing.T) {
	oracle := permissions.NewStatic([]string{"p1", "p2"})

	assert.True(t, oracle.IsOperator("p1"))
	assert.True(t, oracle.IsOperator("p2"))
	assert.False(t, oracle.IsOperator("p3"))
	assert.False(t, oracle.IsOperator(""))
}

func TestStaticOracleEmpty(t *testing.T) {
	oracle := permissions.NewStatic(nil)
	assert.False(t, oracle.IsOperator("p1"))
}
