package blocks

import "github.com/google/uuid"

// SavePlan is the replace-set write derived from a draft: delete every
// persisted row whose id no longer appears in the draft, upsert every draft
// block with a sort_order equal to its array position.
type SavePlan struct {
	DeleteIDs []uuid.UUID
	Upserts   []Block
}

// PlanSave diffs the persisted id set against the draft. The draft array IS
// the order: sort_order is re-derived from position here and never read back
// from storage on write.
func PlanSave(persistedIDs []uuid.UUID, draft []Block) SavePlan {
	keep := make(map[uuid.UUID]struct{}, len(draft))
	for _, b := range draft {
		keep[b.ID] = struct{}{}
	}
	var deletes []uuid.UUID
	for _, id := range persistedIDs {
		if _, ok := keep[id]; !ok {
			deletes = append(deletes, id)
		}
	}
	upserts := make([]Block, len(draft))
	copy(upserts, draft)
	return SavePlan{DeleteIDs: deletes, Upserts: upserts}
}
