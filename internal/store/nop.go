package store

import (
	"time"

	"github.com/amishk599/cvcoach/internal/model"
)

// NopStore is used when history is disabled. It keeps nothing.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Record(model.Attempt) error                { return nil }
func (s *NopStore) Recent(limit int) ([]model.Attempt, error) { return nil, nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error     { return nil }
func (s *NopStore) Close() error                              { return nil }
