package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/vet-backoffice/internal/models"
)

// MemoryLog keeps audit rows in process memory for the memory storage driver.
type MemoryLog struct {
	mu   sync.RWMutex
	seq  uint
	rows []models.AuditLog
}

var _ Sink = (*MemoryLog)(nil)

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (m *MemoryLog) Handle(_ context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.rows = append(m.rows, models.AuditLog{
		ID:        m.seq,
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: time.Now(),
	})
	return nil
}

func (m *MemoryLog) List(_ context.Context, f ListFilter) ([]models.AuditLog, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.AuditLog, 0)
	for _, row := range m.rows {
		switch {
		case row.UserID != f.UserID,
			f.Action != "" && row.Action != f.Action,
			f.Entity != "" && row.Entity != f.Entity,
			f.From != nil && row.CreatedAt.Before(*f.From),
			f.To != nil && !row.CreatedAt.Before(*f.To):
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	total := int64(len(out))
	if f.Limit > 0 {
		start := 0
		if f.Page > 1 {
			start = (f.Page - 1) * f.Limit
		}
		if start > len(out) {
			start = len(out)
		}
		end := start + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}
