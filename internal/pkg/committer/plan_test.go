package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitPlan_AddSkipsNil(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	first := spanner.Delete("products", spanner.Key{"p1"})
	second := spanner.Delete("products", spanner.Key{"p2"})

	plan.Add(first)
	plan.Add(nil)
	plan.AddMultiple([]*spanner.Mutation{nil, second})

	require.Equal(t, 2, plan.Count())
	assert.Same(t, first, plan.Mutations()[0])
	assert.Same(t, second, plan.Mutations()[1])
	assert.False(t, plan.IsEmpty())
}

func TestCommitter_ApplyEmptyPlanIsNoop(t *testing.T) {
	// An empty plan never reaches the client.
	c := NewCommitter(nil)
	assert.NoError(t, c.Apply(context.Background(), NewPlan()))
}
