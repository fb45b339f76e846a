package audit

import (
	"context"
	"testing"
)

func TestMemoryLog_ListFilters(t *testing.T) {
	m := NewMemoryLog()
	ctx := context.Background()

	id := uint(9)
	_ = m.Handle(ctx, Event{UserID: 1, Action: "customer_created", Entity: "customer", EntityID: &id, Metadata: map[string]any{"name": "Ana"}})
	_ = m.Handle(ctx, Event{UserID: 1, Action: "pet_created", Entity: "pet"})
	_ = m.Handle(ctx, Event{UserID: 1, Action: "pet_deleted", Entity: "pet"})
	_ = m.Handle(ctx, Event{UserID: 2, Action: "pet_created", Entity: "pet"})

	all, total, _ := m.List(ctx, ListFilter{UserID: 1, Page: 1, Limit: 2})
	if total != 3 || len(all) != 2 || all[0].Action != "pet_deleted" {
		t.Fatalf("page = %+v (total %d)", all, total)
	}

	pets, total, _ := m.List(ctx, ListFilter{UserID: 1, Entity: "pet", Page: 1, Limit: 50})
	if total != 2 || len(pets) != 2 {
		t.Fatalf("entity filter = %+v", pets)
	}

	created, _, _ := m.List(ctx, ListFilter{UserID: 1, Action: "customer_created", Page: 1, Limit: 50})
	if len(created) != 1 || created[0].Metadata != `{"name":"Ana"}` || *created[0].EntityID != 9 {
		t.Fatalf("action filter = %+v", created)
	}
}
