package core

import (
	"math"
	"sort"
)

// ComputeCenterBalances reduces ledger entries into per-center balances.
// centers seeds the result so that known centers appear even with no
// movements; any center found only on entries is added as well. Entries
// without a center are excluded from every total. Exit weights are taken
// as absolute values so that malformed signs cannot flip a balance.
// The result is ordered by balance, descending.
func ComputeCenterBalances(centers []string, entries []LedgerEntry) []CenterBalance {
	byCenter := make(map[string]*CenterBalance)
	order := make([]string, 0, len(centers))

	add := func(name string) *CenterBalance {
		if b, ok := byCenter[name]; ok {
			return b
		}
		b := &CenterBalance{Center: name}
		byCenter[name] = b
		order = append(order, name)
		return b
	}

	for _, name := range centers {
		if name != "" {
			add(name)
		}
	}

	for _, e := range entries {
		if e.Center == "" {
			continue
		}
		b := add(e.Center)
		kg := math.Abs(e.Total)
		if e.Kind == MovementEntry {
			b.EntryCount++
			b.EntryKg += kg
			b.Materials.Add(e.Materials, 1)
		} else {
			b.ExitCount++
			b.ExitKg += kg
			b.Materials.Add(e.Materials, -1)
		}
	}

	out := make([]CenterBalance, 0, len(order))
	for _, name := range order {
		b := byCenter[name]
		b.Balance = b.EntryKg - b.ExitKg
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance > out[j].Balance
	})
	return out
}
