package core

import (
	"errors"
	"testing"
)

func TestVisibleFields(t *testing.T) {
	fields, err := VisibleFields(ActivityRecoleccion)
	if err != nil {
		t.Fatalf("VisibleFields failed: %v", err)
	}
	if len(fields) != 2 || fields[0] != FieldKilos || fields[1] != FieldCentro {
		t.Errorf("unexpected fields for recoleccion: %v", fields)
	}

	if _, err := VisibleFields("Bingo"); !errors.Is(err, ErrUnknownActivityType) {
		t.Errorf("expected ErrUnknownActivityType, got %v", err)
	}
}

func TestActivity_ValidateFields(t *testing.T) {
	ok := Activity{Type: ActivityEducacion, Asistentes: 35, Institucion: "IE La Esperanza"}
	if err := ok.ValidateFields(); err != nil {
		t.Errorf("valid activity rejected: %v", err)
	}

	hidden := Activity{Type: ActivityEducacion, Kilos: 120}
	if err := hidden.ValidateFields(); err == nil {
		t.Error("kilos is not visible for educacion and must be rejected")
	}

	visita := Activity{Type: ActivityVisita, Entidad: "CAR Cundinamarca"}
	if err := visita.ValidateFields(); err != nil {
		t.Errorf("valid visita rejected: %v", err)
	}

	unknown := Activity{Type: "Otra Cosa"}
	if err := unknown.ValidateFields(); !errors.Is(err, ErrUnknownActivityType) {
		t.Errorf("expected ErrUnknownActivityType, got %v", err)
	}
}
