package models

import (
	"time"

	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusSeated    = "Seated"
	StatusCancelled = "Cancelled"
)

type Reservation struct {
	Base            `bson:",inline"`
	TableID         string    `json:"tableId" bson:"tableId" gorm:"type:varchar(24);index;not null"`
	CustomerName    string    `json:"customerName" bson:"customerName" gorm:"type:varchar(100);not null"`
	CustomerPhone   string    `json:"customerPhone,omitempty" bson:"customerPhone,omitempty" gorm:"type:varchar(20)"`
	CustomerEmail   string    `json:"customerEmail,omitempty" bson:"customerEmail,omitempty" gorm:"type:varchar(20)"`
	ReservationTime time.Time `json:"reservationTime" bson:"reservationTime" gorm:"index;not null"`
	PartySize       int       `json:"partySize" bson:"partySize" gorm:"not null"`
	Status          string    `json:"status" bson:"status" gorm:"type:varchar(20);not null"`
	Notes           string    `json:"notes,omitempty" bson:"notes,omitempty" gorm:"type:varchar(200)"`
}

func (r *Reservation) UniqueKeys() map[string]interface{} {
	return nil
}

// ReservationInput -> body untuk POST /reservations
// customerEmail dibatasi 20 karakter, mengikuti schema lama
type ReservationInput struct {
	TableID         string `json:"tableId" label:"Table ID" validate:"required"`
	CustomerName    string `json:"customerName" label:"Customer name" validate:"required,max=100"`
	CustomerPhone   string `json:"customerPhone" label:"Customer phone" validate:"max=20"`
	CustomerEmail   string `json:"customerEmail" label:"Customer email" validate:"max=20"`
	ReservationTime string `json:"reservationTime" label:"Reservation time" validate:"required,isodate"`
	PartySize       int    `json:"partySize" label:"Party size" validate:"required,min=1,max=20"`
	Status          string `json:"status" label:"Status" validate:"omitempty,oneof=Pending Confirmed Seated Cancelled"`
	Notes           string `json:"notes" label:"Notes" validate:"max=200"`
}

func (in *ReservationInput) Sanitize() {
	in.TableID = sanitize(in.TableID)
	in.CustomerName = sanitize(in.CustomerName)
	in.CustomerPhone = utils.FormatPhoneNumber(sanitize(in.CustomerPhone))
	in.CustomerEmail = sanitize(in.CustomerEmail)
	in.ReservationTime = sanitize(in.ReservationTime)
	in.Status = sanitize(in.Status)
	in.Notes = sanitize(in.Notes)
}

func (in ReservationInput) ToEntity() (Reservation, error) {
	reservation := Reservation{Status: StatusPending}
	if err := copyInto(&reservation, &in); err != nil {
		return Reservation{}, err
	}
	return reservation, nil
}

type ReservationUpdate struct {
	TableID         *string `json:"tableId" label:"Table ID" validate:"omitnil,min=1"`
	CustomerName    *string `json:"customerName" label:"Customer name" validate:"omitnil,min=1,max=100"`
	CustomerPhone   *string `json:"customerPhone" label:"Customer phone" validate:"omitnil,max=20"`
	CustomerEmail   *string `json:"customerEmail" label:"Customer email" validate:"omitnil,max=20"`
	ReservationTime *string `json:"reservationTime" label:"Reservation time" validate:"omitnil,isodate"`
	PartySize       *int    `json:"partySize" label:"Party size" validate:"omitnil,min=1,max=20"`
	Status          *string `json:"status" label:"Status" validate:"omitnil,oneof=Pending Confirmed Seated Cancelled"`
	Notes           *string `json:"notes" label:"Notes" validate:"omitnil,max=200"`
}

func (in *ReservationUpdate) Sanitize() {
	sanitizePtr(in.TableID)
	sanitizePtr(in.CustomerName)
	sanitizePtr(in.CustomerPhone)
	if in.CustomerPhone != nil {
		*in.CustomerPhone = utils.FormatPhoneNumber(*in.CustomerPhone)
	}
	sanitizePtr(in.CustomerEmail)
	sanitizePtr(in.ReservationTime)
	sanitizePtr(in.Status)
	sanitizePtr(in.Notes)
}

// ToFields expects a validated input, so reservationTime always parses here.
func (in ReservationUpdate) ToFields() store.Fields {
	fields := store.Fields{}
	setIf(fields, "tableId", in.TableID)
	setIf(fields, "customerName", in.CustomerName)
	setIf(fields, "customerPhone", in.CustomerPhone)
	setIf(fields, "customerEmail", in.CustomerEmail)
	if in.ReservationTime != nil {
		if t, ok := utils.ParseDate(*in.ReservationTime); ok {
			fields["reservationTime"] = t
		}
	}
	setIf(fields, "partySize", in.PartySize)
	setIf(fields, "status", in.Status)
	setIf(fields, "notes", in.Notes)
	return fields
}
