// Package memory keeps every aggregate in process memory. It backs the
// "memory" storage driver used for local runs and the handler tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

type Store struct {
	mu  sync.RWMutex
	seq uint
	now func() time.Time

	users           map[uint]models.User
	customers       map[uint]models.Customer
	pets            map[uint]models.Pet
	petImages       map[uint]models.PetImage
	treatments      map[uint]models.Treatment
	visits          map[uint]models.Visit
	visitTreatments map[uint]models.VisitTreatment
	visitNotes      map[uint]models.VisitNote
	visitImages     map[uint]models.VisitImage
}

func NewStore() *Store {
	return &Store{
		now:             time.Now,
		users:           make(map[uint]models.User),
		customers:       make(map[uint]models.Customer),
		pets:            make(map[uint]models.Pet),
		petImages:       make(map[uint]models.PetImage),
		treatments:      make(map[uint]models.Treatment),
		visits:          make(map[uint]models.Visit),
		visitTreatments: make(map[uint]models.VisitTreatment),
		visitNotes:      make(map[uint]models.VisitNote),
		visitImages:     make(map[uint]models.VisitImage),
	}
}

// SetClock replaces the time source used for timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Ownership() *OwnershipRepo  { return &OwnershipRepo{s} }
func (s *Store) Customers() *CustomerRepo   { return &CustomerRepo{s} }
func (s *Store) Pets() *PetRepo             { return &PetRepo{s} }
func (s *Store) Treatments() *TreatmentRepo { return &TreatmentRepo{s} }
func (s *Store) Visits() *VisitRepo         { return &VisitRepo{s} }
func (s *Store) Images() *ImageRepo         { return &ImageRepo{s} }
func (s *Store) Dashboard() *DashboardRepo  { return &DashboardRepo{s} }
func (s *Store) Users() *UserRepo           { return &UserRepo{s} }

// callers hold s.mu for writing
func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

func (s *Store) deletedNow() gorm.DeletedAt {
	return gorm.DeletedAt{Time: s.now(), Valid: true}
}

func live(d gorm.DeletedAt) bool {
	return !d.Valid
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func page[T any](items []T, pageNum, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := 0
	if pageNum > 1 {
		start = (pageNum - 1) * limit
	}
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func sortByNameThenID[T any](items []T, name func(T) string, id func(T) uint) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(name(items[i])), strings.ToLower(name(items[j]))
		if a != b {
			return a < b
		}
		return id(items[i]) < id(items[j])
	})
}

// -------- cascades (callers hold s.mu) --------

func (s *Store) deleteVisitTree(visitID uint) {
	del := s.deletedNow()

	for id, vt := range s.visitTreatments {
		if vt.VisitID == visitID && live(vt.DeletedAt) {
			vt.DeletedAt = del
			s.visitTreatments[id] = vt
		}
	}
	for id, n := range s.visitNotes {
		if n.VisitID == visitID && live(n.DeletedAt) {
			n.DeletedAt = del
			s.visitNotes[id] = n
		}
	}
	for id, img := range s.visitImages {
		if img.VisitID == visitID && live(img.DeletedAt) {
			img.DeletedAt = del
			s.visitImages[id] = img
		}
	}

	if v, ok := s.visits[visitID]; ok && live(v.DeletedAt) {
		v.DeletedAt = del
		s.visits[visitID] = v
	}
}

func (s *Store) deletePetTree(petID uint) {
	for id, v := range s.visits {
		if v.PetID == petID && live(v.DeletedAt) {
			s.deleteVisitTree(id)
		}
	}

	del := s.deletedNow()
	for id, img := range s.petImages {
		if img.PetID == petID && live(img.DeletedAt) {
			img.DeletedAt = del
			s.petImages[id] = img
		}
	}

	if p, ok := s.pets[petID]; ok && live(p.DeletedAt) {
		p.DeletedAt = del
		s.pets[petID] = p
	}
}

// liveCustomerOf returns the customer when it is live and owned by userID.
func (s *Store) liveCustomerOf(userID, customerID uint) (models.Customer, bool) {
	c, ok := s.customers[customerID]
	if !ok || !live(c.DeletedAt) || c.UserID != userID {
		return models.Customer{}, false
	}
	return c, true
}

func (s *Store) livePet(id uint) *models.Pet {
	p, ok := s.pets[id]
	if !ok || !live(p.DeletedAt) {
		return nil
	}
	p.Images = nil
	p.Customer = nil
	return &p
}

func (s *Store) liveCustomer(id uint) *models.Customer {
	c, ok := s.customers[id]
	if !ok || !live(c.DeletedAt) {
		return nil
	}
	c.Pets = nil
	return &c
}
