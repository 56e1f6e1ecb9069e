package blocks

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSaveDeletesOnlyRemovedRows(t *testing.T) {
	b1 := NewSpacerBlock(HeightMD)
	b3 := NewContainerBlock(2)
	b4 := NewSpacerBlock(HeightLG)
	removed := uuid.New()

	persisted := []uuid.UUID{b1.ID, removed, b3.ID}
	draft := []Block{b1, b3, b4}

	plan := PlanSave(persisted, draft)

	require.Len(t, plan.DeleteIDs, 1)
	assert.Equal(t, removed, plan.DeleteIDs[0])
	require.Len(t, plan.Upserts, 3)
	assert.Equal(t, b1.ID, plan.Upserts[0].ID)
	assert.Equal(t, b3.ID, plan.Upserts[1].ID)
	assert.Equal(t, b4.ID, plan.Upserts[2].ID)
}

func TestPlanSaveEmptyPersistedSet(t *testing.T) {
	draft := []Block{NewSpacerBlock(HeightMD), NewContainerBlock(1)}
	plan := PlanSave(nil, draft)
	assert.Empty(t, plan.DeleteIDs)
	assert.Len(t, plan.Upserts, 2)
}

func TestPlanSaveEmptyDraftDeletesEverything(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	plan := PlanSave(ids, nil)
	assert.Equal(t, ids, plan.DeleteIDs)
	assert.Empty(t, plan.Upserts)
}

func TestPlanSaveUpsertsFollowDraftOrder(t *testing.T) {
	a := NewSpacerBlock(HeightSM)
	b := NewContainerBlock(1)
	c := NewSpacerBlock(HeightXL)

	plan := PlanSave([]uuid.UUID{a.ID, b.ID, c.ID}, []Block{c, a, b})

	assert.Empty(t, plan.DeleteIDs)
	want := []uuid.UUID{c.ID, a.ID, b.ID}
	for i, up := range plan.Upserts {
		assert.Equal(t, want[i], up.ID)
	}
}
