package types

import "github.com/pkg/errors"

// CheckpointState is the resumable progress of contract discovery.
type CheckpointState struct {
	// LastPage is the next page to fetch, starting from 0.
	LastPage uint64 `json:"last_page"`

	// Data holds the resolved contracts in discovery order.
	Data []ContractRecord `json:"data"`
}

// NewCheckpointState returns the state to start a scan from scratch.
func NewCheckpointState() *CheckpointState {
	return &CheckpointState{
		Data: []ContractRecord{},
	}
}

// Advance appends the records resolved from a page and moves to the given page.
//
// Page must be greater than the current one, so that a persisted page always includes its records.
func (s *CheckpointState) Advance(page uint64, records ...ContractRecord) error {
	if page <= s.LastPage {
		return errors.Errorf("Checkpoint page not advanced, current = %v, new = %v", s.LastPage, page)
	}

	s.Data = append(s.Data, records...)
	s.LastPage = page

	return nil
}

// Len returns the number of resolved contracts.
func (s *CheckpointState) Len() int {
	return len(s.Data)
}

// Normalize ensures the state is usable after decoding, e.g. data field is null or missing.
func (s *CheckpointState) Normalize() *CheckpointState {
	if s.Data == nil {
		s.Data = []ContractRecord{}
	}

	return s
}
