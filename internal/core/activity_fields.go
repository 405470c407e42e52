package core

import (
	"errors"
	"fmt"
)

// ErrUnknownActivityType indicates a type outside the portal's catalog.
var ErrUnknownActivityType = errors.New("unknown activity type")

// ActivityType is the discriminant that drives which form fields apply.
type ActivityType string

const (
	ActivityEducacion   ActivityType = "Educacion Ambiental"
	ActivityRecoleccion ActivityType = "Jornada de Recoleccion"
	ActivityVisita      ActivityType = "Visita Tecnica"
)

// ActivityField names one conditional form field of an activity.
type ActivityField string

const (
	FieldAsistentes  ActivityField = "asistentes"
	FieldInstitucion ActivityField = "institucion"
	FieldKilos       ActivityField = "kilos"
	FieldCentro      ActivityField = "centro"
	FieldEntidad     ActivityField = "entidad"
)

// activityFieldTable is the declarative visibility rule table keyed by
// activity type. Fields absent from a type's row must stay empty on its
// records.
var activityFieldTable = map[ActivityType][]ActivityField{
	ActivityEducacion:   {FieldAsistentes, FieldInstitucion},
	ActivityRecoleccion: {FieldKilos, FieldCentro},
	ActivityVisita:      {FieldEntidad},
}

// VisibleFields returns the conditional fields applicable to an activity
// type, or ErrUnknownActivityType.
func VisibleFields(t ActivityType) ([]ActivityField, error) {
	fields, ok := activityFieldTable[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivityType, t)
	}
	return fields, nil
}

// FieldVisible reports whether field applies to activities of type t.
func FieldVisible(t ActivityType, field ActivityField) bool {
	for _, f := range activityFieldTable[t] {
		if f == field {
			return true
		}
	}
	return false
}

// Activity is one registered field activity. The conditional attributes
// are populated only when visible for the activity's type.
type Activity struct {
	ID              string       `json:"id"`
	Type            ActivityType `json:"type"`
	Date            string       `json:"date"` // YYYY-MM-DD
	CoordinatorIDs  []string     `json:"coordinator_ids"`
	MunicipalityIDs []string     `json:"municipality_ids"`
	Description     string       `json:"description"`

	Asistentes  int     `json:"asistentes,omitempty"`
	Institucion string  `json:"institucion,omitempty"`
	Kilos       float64 `json:"kilos,omitempty"`
	Centro      string  `json:"centro,omitempty"`
	Entidad     string  `json:"entidad,omitempty"`
}

// ValidateFields rejects values carried in fields the activity's type does
// not expose.
func (a *Activity) ValidateFields() error {
	if _, err := VisibleFields(a.Type); err != nil {
		return err
	}
	set := map[ActivityField]bool{
		FieldAsistentes:  a.Asistentes != 0,
		FieldInstitucion: a.Institucion != "",
		FieldKilos:       a.Kilos != 0,
		FieldCentro:      a.Centro != "",
		FieldEntidad:     a.Entidad != "",
	}
	for field, present := range set {
		if present && !FieldVisible(a.Type, field) {
			return fmt.Errorf("field %q does not apply to activity type %q", field, a.Type)
		}
	}
	return nil
}
