package core

import "testing"

func TestComputeCenterBalances_SignedTotals(t *testing.T) {
	entries := []LedgerEntry{
		{Center: "Acopio Norte", Kind: MovementEntry, Total: 100, Materials: MaterialWeights{Reciclaje: 60}},
		{Center: "Acopio Norte", Kind: MovementExit, Total: -40, Materials: MaterialWeights{Reciclaje: 10}},
	}

	balances := ComputeCenterBalances(nil, entries)
	if len(balances) != 1 {
		t.Fatalf("expected 1 center, got %d", len(balances))
	}
	b := balances[0]
	if b.EntryCount != 1 || b.ExitCount != 1 {
		t.Errorf("counts: entry=%d exit=%d", b.EntryCount, b.ExitCount)
	}
	if b.EntryKg != 100 || b.ExitKg != 40 {
		t.Errorf("kg: entry=%v exit=%v", b.EntryKg, b.ExitKg)
	}
	if b.Balance != 60 {
		t.Errorf("balance: expected 60, got %v", b.Balance)
	}
	if b.Materials.Reciclaje != 50 {
		t.Errorf("material reciclaje: expected 60-10=50, got %v", b.Materials.Reciclaje)
	}
}

func TestComputeCenterBalances_ExcludesCenterlessEntries(t *testing.T) {
	entries := []LedgerEntry{
		{Center: "", Kind: MovementEntry, Total: 500},
		{Center: "Acopio Sur", Kind: MovementEntry, Total: 30},
	}

	balances := ComputeCenterBalances(nil, entries)
	if len(balances) != 1 || balances[0].Center != "Acopio Sur" {
		t.Fatalf("centerless entry leaked into totals: %+v", balances)
	}
	if balances[0].EntryKg != 30 {
		t.Errorf("expected 30 kg, got %v", balances[0].EntryKg)
	}
}

func TestComputeCenterBalances_AbsoluteExitWeights(t *testing.T) {
	// Malformed fixture: an exit with a positive total. The aggregator
	// must treat the weight as absolute either way.
	entries := []LedgerEntry{
		{Center: "Acopio Este", Kind: MovementEntry, Total: 80},
		{Center: "Acopio Este", Kind: MovementExit, Total: 25},
	}

	balances := ComputeCenterBalances(nil, entries)
	if balances[0].ExitKg != 25 {
		t.Errorf("exit kg should be abs(total): got %v", balances[0].ExitKg)
	}
	if balances[0].Balance != 55 {
		t.Errorf("balance: expected 55, got %v", balances[0].Balance)
	}
}

func TestComputeCenterBalances_OrderedByBalanceDescending(t *testing.T) {
	entries := []LedgerEntry{
		{Center: "Chico", Kind: MovementEntry, Total: 10},
		{Center: "Grande", Kind: MovementEntry, Total: 900},
		{Center: "Mediano", Kind: MovementEntry, Total: 300},
	}

	balances := ComputeCenterBalances(nil, entries)
	want := []string{"Grande", "Mediano", "Chico"}
	for i, name := range want {
		if balances[i].Center != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, balances[i].Center)
		}
	}
}

func TestComputeCenterBalances_SeedsKnownCenters(t *testing.T) {
	balances := ComputeCenterBalances([]string{"Acopio Vacio"}, nil)
	if len(balances) != 1 {
		t.Fatalf("expected the seeded center, got %d results", len(balances))
	}
	if balances[0].Center != "Acopio Vacio" || balances[0].Balance != 0 {
		t.Errorf("seeded center should appear with zero balance: %+v", balances[0])
	}
}
