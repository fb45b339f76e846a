package treatment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/vet-backoffice/internal/httperr"
	"github.com/BruksfildServices01/vet-backoffice/internal/infra/memory"
)

func TestCatalog(t *testing.T) {
	svc := NewService(memory.NewStore().Treatments(), nil)
	ctx := context.Background()
	zero := 0

	for _, tt := range []struct {
		in   CreateInput
		code string
	}{
		{CreateInput{Name: " "}, "name_required"},
		{CreateInput{Name: "X", DefaultPrice: -1}, "invalid_price"},
		{CreateInput{Name: "X", IntervalDays: &zero}, "invalid_interval"},
	} {
		if _, err := svc.Create(ctx, 1, tt.in); !httperr.IsBusiness(err, tt.code) {
			t.Errorf("Create(%+v) err = %v, want %s", tt.in, err, tt.code)
		}
	}

	item, err := svc.Create(ctx, 1, CreateInput{Name: "Checkup", DefaultPrice: 30})
	if err != nil {
		t.Fatal(err)
	}

	price := 35.0
	if _, err := svc.Update(ctx, 2, item.ID, UpdateInput{DefaultPrice: &price}); !httperr.IsBusiness(err, "treatment_not_found") {
		t.Fatalf("foreign update err = %v", err)
	}
	updated, err := svc.Update(ctx, 1, item.ID, UpdateInput{DefaultPrice: &price})
	if err != nil || updated.DefaultPrice != 35 {
		t.Fatalf("update = %+v %v", updated, err)
	}

	days := 30
	if updated, err = svc.Update(ctx, 1, item.ID, UpdateInput{IntervalDays: &days}); err != nil || updated.IntervalDays == nil {
		t.Fatalf("set interval = %+v %v", updated, err)
	}
	if updated, err = svc.Update(ctx, 1, item.ID, UpdateInput{ClearIntervalDays: true, IntervalDays: &days}); err != nil || updated.IntervalDays != nil {
		t.Fatalf("clear interval = %+v %v", updated, err)
	}

	if err := svc.Delete(ctx, 1, item.ID); err != nil {
		t.Fatal(err)
	}
	if items, _ := svc.List(ctx, 1, ""); len(items) != 0 {
		t.Fatalf("deleted item still listed: %+v", items)
	}
}
