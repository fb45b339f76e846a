package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/domain"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/customer"
	"github.com/BruksfildServices01/vet-backoffice/internal/domain/image"
	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

func TestDeleteCustomer_Cascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	c := &models.Customer{UserID: 1, Name: "Ana"}
	_ = s.Customers().CreateCustomer(ctx, c)
	p := &models.Pet{CustomerID: c.ID, Name: "Rex", Species: "dog"}
	_ = s.Pets().CreatePet(ctx, p)
	v := &models.Visit{CustomerID: c.ID, PetID: p.ID, Title: "x", Status: "scheduled", ScheduledAt: time.Now(),
		Notes: []models.VisitNote{{Content: "hello"}}}
	if err := s.Visits().CreateVisit(ctx, v); err != nil {
		t.Fatal(err)
	}
	img, err := s.Images().CreateImage(ctx, image.Owner{Kind: image.OwnerVisit, ID: v.ID}, models.ImageMeta{StorageKey: "k1"})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Customers().DeleteCustomer(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}

	if _, err := s.Ownership().FindCustomer(ctx, 1, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("customer still visible: %v", err)
	}
	if _, err := s.Ownership().FindPet(ctx, c.ID, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("pet still visible: %v", err)
	}
	if _, err := s.Ownership().FindVisit(ctx, c.ID, p.ID, v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("visit still visible: %v", err)
	}
	if notes, _ := s.Visits().ListVisitNotes(ctx, v.ID); len(notes) != 0 {
		t.Errorf("notes survived cascade: %+v", notes)
	}
	if _, err := s.Images().GetImage(ctx, image.Owner{Kind: image.OwnerVisit, ID: v.ID}, img.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("image survived cascade: %v", err)
	}

	if err := s.Customers().DeleteCustomer(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestPetCount_ExcludesDeletedPets(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	c := &models.Customer{UserID: 1, Name: "Ana"}
	_ = s.Customers().CreateCustomer(ctx, c)
	for _, name := range []string{"Rex", "Mia", "Bob"} {
		_ = s.Pets().CreatePet(ctx, &models.Pet{CustomerID: c.ID, Name: name, Species: "dog"})
	}

	pets, _ := s.Pets().ListPetsByCustomer(ctx, c.ID)
	if err := s.Pets().DeletePet(ctx, pets[0].ID); err != nil {
		t.Fatal(err)
	}

	counts, _ := s.Customers().CountPets(ctx, []uint{c.ID})
	if counts[c.ID] != 2 {
		t.Fatalf("pet count = %d, want 2", counts[c.ID])
	}
	if pets, _ := s.Pets().ListPetsByCustomer(ctx, c.ID); len(pets) != 2 {
		t.Fatalf("listed %d pets, want 2", len(pets))
	}
}

func TestListCustomers_SearchAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, c := range []models.Customer{
		{UserID: 1, Name: "carla", Email: "c@x.example"},
		{UserID: 1, Name: "Ana", Phone: "5551234"},
		{UserID: 1, Name: "Bruno", Email: "BRUNO@x.example"},
		{UserID: 2, Name: "Anabel"},
	} {
		c := c
		_ = s.Customers().CreateCustomer(ctx, &c)
	}

	all, total, _ := s.Customers().ListCustomers(ctx, customer.ListFilter{UserID: 1, Page: 1, Limit: 2})
	if total != 3 || len(all) != 2 || all[0].Name != "Ana" || all[1].Name != "Bruno" {
		t.Fatalf("page 1 = %+v (total %d)", all, total)
	}

	found, total, _ := s.Customers().ListCustomers(ctx, customer.ListFilter{UserID: 1, Query: "bruno@", Page: 1, Limit: 20})
	if total != 1 || found[0].Name != "Bruno" {
		t.Fatalf("search = %+v", found)
	}

	byPhone, _, _ := s.Customers().ListCustomers(ctx, customer.ListFilter{UserID: 1, Query: "1234", Page: 1, Limit: 20})
	if len(byPhone) != 1 || byPhone[0].Name != "Ana" {
		t.Fatalf("phone search = %+v", byPhone)
	}
}

func TestCreateImage_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	owner := image.Owner{Kind: image.OwnerPet, ID: 7}

	img, err := s.Images().CreateImage(ctx, owner, models.ImageMeta{StorageKey: "users/1/a.png"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Images().CreateImage(ctx, owner, models.ImageMeta{StorageKey: "users/1/a.png"}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}

	// a deleted row still holds its key
	_ = s.Images().DeleteImage(ctx, owner, img.ID)
	if _, err := s.Images().CreateImage(ctx, owner, models.ImageMeta{StorageKey: "users/1/a.png"}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("after delete err = %v, want ErrDuplicate", err)
	}
}
