// Package santri owns the student roster datastore.
package santri

import (
	"context"
	"time"
)

// Santri is one student record.
type Santri struct {
	ID        string    `json:"id"`
	NIS       string    `json:"nis"`
	Nama      string    `json:"nama"`
	Kelas     string    `json:"kelas,omitempty"`
	Halaqoh   string    `json:"halaqoh,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the persistence boundary for the roster.
type Store interface {
	// List returns the roster ordered by nama.
	List(ctx context.Context) ([]Santri, error)
}
