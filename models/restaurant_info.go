package models

import (
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

// RestaurantInfo hanya punya satu dokumen; baca/tulis selalu ke dokumen pertama.
type RestaurantInfo struct {
	Base         `bson:",inline"`
	Name         string `json:"name" bson:"name" gorm:"type:varchar(100);not null"`
	Address      string `json:"address,omitempty" bson:"address,omitempty" gorm:"type:varchar(200)"`
	PhoneNumber  string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty" gorm:"type:varchar(20)"`
	OpeningHours string `json:"openingHours,omitempty" bson:"openingHours,omitempty" gorm:"type:varchar(200)"`
	Website      string `json:"website,omitempty" bson:"website,omitempty" gorm:"type:varchar(200)"`
}

func (RestaurantInfo) TableName() string {
	return "restaurant_info"
}

func (r *RestaurantInfo) UniqueKeys() map[string]interface{} {
	return nil
}

// RestaurantInfoInput -> body untuk PUT /restaurant-info; semua field ditulis ulang
type RestaurantInfoInput struct {
	Name         string `json:"name" label:"Restaurant name" validate:"required,max=100"`
	Address      string `json:"address" label:"Address" validate:"max=200"`
	PhoneNumber  string `json:"phoneNumber" label:"Phone number" validate:"max=20"`
	OpeningHours string `json:"openingHours" label:"Opening hours" validate:"max=200"`
	Website      string `json:"website" label:"Website" validate:"omitempty,max=200,weburl"`
}

func (in *RestaurantInfoInput) Sanitize() {
	in.Name = sanitize(in.Name)
	in.Address = sanitize(in.Address)
	in.PhoneNumber = utils.FormatPhoneNumber(sanitize(in.PhoneNumber))
	in.OpeningHours = sanitize(in.OpeningHours)
	in.Website = sanitize(in.Website)
}

func (in RestaurantInfoInput) ToFields() store.Fields {
	return store.Fields{
		"name":         in.Name,
		"address":      in.Address,
		"phoneNumber":  in.PhoneNumber,
		"openingHours": in.OpeningHours,
		"website":      in.Website,
	}
}
