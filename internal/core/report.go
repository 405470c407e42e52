package core

import (
	"math"
	"sort"
)

// MunicipalityStat is the per-municipality roll-up behind the map view:
// how many activities and movements touched the municipality and the
// kilograms moved there.
type MunicipalityStat struct {
	MunicipalityID string  `json:"municipality_id"`
	MunDep         string  `json:"mundep"`
	ActivityCount  int     `json:"activity_count"`
	MovementCount  int     `json:"movement_count"`
	TotalKg        float64 `json:"total_kg"` // absolute kilograms, both directions
}

// ComputeMunicipalityStats reduces activities and ledger entries into one
// stat per municipality. Records linking several municipalities count once
// per municipality; records linking none are skipped. The result is
// ordered by total kilograms, then activity count, descending.
func ComputeMunicipalityStats(municipalities []Municipality, activities []Activity, entries []LedgerEntry) []MunicipalityStat {
	labels := make(map[string]string, len(municipalities))
	for _, m := range municipalities {
		labels[m.ID] = m.MunDep
	}

	stats := make(map[string]*MunicipalityStat)
	get := func(id string) *MunicipalityStat {
		if s, ok := stats[id]; ok {
			return s
		}
		s := &MunicipalityStat{MunicipalityID: id, MunDep: labels[id]}
		stats[id] = s
		return s
	}

	for _, a := range activities {
		for _, id := range a.MunicipalityIDs {
			s := get(id)
			s.ActivityCount++
			s.TotalKg += a.Kilos
		}
	}
	for _, e := range entries {
		for _, id := range e.MunicipalityIDs {
			s := get(id)
			s.MovementCount++
			s.TotalKg += math.Abs(e.Total)
		}
	}

	out := make([]MunicipalityStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalKg != out[j].TotalKg {
			return out[i].TotalKg > out[j].TotalKg
		}
		if out[i].ActivityCount != out[j].ActivityCount {
			return out[i].ActivityCount > out[j].ActivityCount
		}
		return out[i].MunicipalityID < out[j].MunicipalityID
	})
	return out
}
