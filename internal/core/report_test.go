package core

import "testing"

func TestComputeMunicipalityStats(t *testing.T) {
	municipalities := []Municipality{
		{ID: "recM1", MunDep: "Soacha - Cundinamarca"},
		{ID: "recM2", MunDep: "Girardot - Cundinamarca"},
	}
	activities := []Activity{
		{Type: ActivityRecoleccion, MunicipalityIDs: []string{"recM1"}, Kilos: 200},
		{Type: ActivityEducacion, MunicipalityIDs: []string{"recM1"}},
	}
	entries := []LedgerEntry{
		{Kind: MovementEntry, MunicipalityIDs: []string{"recM2"}, Total: 90},
		{Kind: MovementExit, MunicipalityIDs: []string{"recM2"}, Total: -30},
		{Kind: MovementEntry, MunicipalityIDs: nil, Total: 999}, // no municipality: skipped
	}

	stats := ComputeMunicipalityStats(municipalities, activities, entries)
	if len(stats) != 2 {
		t.Fatalf("expected 2 municipalities, got %d", len(stats))
	}

	// recM1 leads: 200 kg vs 120 kg.
	if stats[0].MunicipalityID != "recM1" {
		t.Fatalf("expected recM1 first, got %s", stats[0].MunicipalityID)
	}
	if stats[0].ActivityCount != 2 || stats[0].TotalKg != 200 {
		t.Errorf("recM1: %+v", stats[0])
	}
	if stats[0].MunDep != "Soacha - Cundinamarca" {
		t.Errorf("mundep label missing: %+v", stats[0])
	}

	if stats[1].MovementCount != 2 || stats[1].TotalKg != 120 {
		t.Errorf("recM2 should sum absolute kilograms: %+v", stats[1])
	}
}
