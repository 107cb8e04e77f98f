package models

import "github.com/yeremiapane/table-reservation/store"

// ReservationStatus -> katalog status yang bisa dikonfigurasi, terpisah dari field Reservation.Status
type ReservationStatus struct {
	Base        `bson:",inline"`
	Name        string `json:"name" bson:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `json:"description,omitempty" bson:"description,omitempty" gorm:"type:varchar(200)"`
}

func (s *ReservationStatus) UniqueKeys() map[string]interface{} {
	return map[string]interface{}{"name": s.Name}
}

type ReservationStatusInput struct {
	Name        string `json:"name" label:"Name" validate:"required,max=50"`
	Description string `json:"description" label:"Description" validate:"max=200"`
}

func (in *ReservationStatusInput) Sanitize() {
	in.Name = sanitize(in.Name)
	in.Description = sanitize(in.Description)
}

func (in ReservationStatusInput) ToEntity() (ReservationStatus, error) {
	var status ReservationStatus
	err := copyInto(&status, &in)
	return status, err
}

type ReservationStatusUpdate struct {
	Name        *string `json:"name" label:"Name" validate:"omitnil,min=1,max=50"`
	Description *string `json:"description" label:"Description" validate:"omitnil,max=200"`
}

func (in *ReservationStatusUpdate) Sanitize() {
	sanitizePtr(in.Name)
	sanitizePtr(in.Description)
}

func (in ReservationStatusUpdate) ToFields() store.Fields {
	fields := store.Fields{}
	setIf(fields, "name", in.Name)
	setIf(fields, "description", in.Description)
	return fields
}
