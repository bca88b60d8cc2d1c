package dto

import (
	tableModel "velvet/internal/domains/table/model"
)

const (
	CandidateKindSingle   = "single"
	CandidateKindCombined = "combined"
)

// TableCandidate is one availability answer. A combined candidate is synthesized
// from a free pair of joinable tables and never exists as a stored table row.
type TableCandidate struct {
	Kind             string   `json:"kind"`
	TableID          string   `json:"table_id"`
	TableNumber      int      `json:"table_number"`
	CompanionTableID string   `json:"companion_table_id,omitempty"`
	CompanionNumber  int      `json:"companion_number,omitempty"`
	Floor            string   `json:"floor"`
	CapacityMin      int      `json:"capacity_min"`
	CapacityMax      int      `json:"capacity_max"`
	Features         []string `json:"features"`
}

// SingleCandidate wraps one free table.
func SingleCandidate(table tableModel.Table) TableCandidate {
	return TableCandidate{
		Kind:        CandidateKindSingle,
		TableID:     table.ID,
		TableNumber: table.TableNumber,
		Floor:       table.Floor,
		CapacityMin: table.CapacityMin,
		CapacityMax: table.CapacityMax,
		Features:    table.Features(),
	}
}

// CombinedCandidate synthesizes the joined pair. Capacity is the union range:
// the smaller minimum through the summed maximum.
func CombinedCandidate(primary, companion tableModel.Table) TableCandidate {
	capacityMin := primary.CapacityMin
	if companion.CapacityMin < capacityMin {
		capacityMin = companion.CapacityMin
	}

	return TableCandidate{
		Kind:             CandidateKindCombined,
		TableID:          primary.ID,
		TableNumber:      primary.TableNumber,
		CompanionTableID: companion.ID,
		CompanionNumber:  companion.TableNumber,
		Floor:            primary.Floor,
		CapacityMin:      capacityMin,
		CapacityMax:      primary.CapacityMax + companion.CapacityMax,
		Features:         mergeFeatures(primary, companion),
	}
}

// Fits reports whether partySize lies within the candidate's capacity range.
func (c *TableCandidate) Fits(partySize int) bool {
	return partySize >= c.CapacityMin && partySize <= c.CapacityMax
}

func mergeFeatures(primary, companion tableModel.Table) []string {
	seen := map[string]bool{}
	merged := []string{}

	for _, feature := range append(primary.Features(), companion.Features()...) {
		if !seen[feature] {
			seen[feature] = true
			merged = append(merged, feature)
		}
	}

	return merged
}

type FindFreeTablesResponse struct {
	Date       string           `json:"date"`
	PartySize  int              `json:"party_size"`
	Candidates []TableCandidate `json:"candidates"`
}

type CheckAvailabilityResponse struct {
	TableID   string `json:"table_id"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
}
