package models

import "github.com/yeremiapane/table-reservation/store"

// User -> akun yang terhubung ke identitas Google
type User struct {
	Base     `bson:",inline"`
	GoogleID string `json:"googleId" bson:"googleId" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string `json:"name" bson:"name" gorm:"type:varchar(255)"`
	Email    string `json:"email" bson:"email" gorm:"type:varchar(255)"`
}

func (u *User) UniqueKeys() map[string]interface{} {
	return map[string]interface{}{"googleId": u.GoogleID}
}

type UserInput struct {
	GoogleID string `json:"googleId" label:"Google ID" validate:"required,max=255"`
	Name     string `json:"name" label:"Name" validate:"max=255"`
	Email    string `json:"email" label:"Email" validate:"omitempty,email,max=255"`
}

func (in *UserInput) Sanitize() {
	in.GoogleID = sanitize(in.GoogleID)
	in.Name = sanitize(in.Name)
	in.Email = sanitize(in.Email)
}

func (in UserInput) ToEntity() (User, error) {
	var user User
	err := copyInto(&user, &in)
	return user, err
}

type UserUpdate struct {
	GoogleID *string `json:"googleId" label:"Google ID" validate:"omitnil,min=1,max=255"`
	Name     *string `json:"name" label:"Name" validate:"omitnil,max=255"`
	Email    *string `json:"email" label:"Email" validate:"omitnil,email,max=255"`
}

func (in *UserUpdate) Sanitize() {
	sanitizePtr(in.GoogleID)
	sanitizePtr(in.Name)
	sanitizePtr(in.Email)
}

func (in UserUpdate) ToFields() store.Fields {
	fields := store.Fields{}
	setIf(fields, "googleId", in.GoogleID)
	setIf(fields, "name", in.Name)
	setIf(fields, "email", in.Email)
	return fields
}
