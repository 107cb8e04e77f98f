package models

import "github.com/yeremiapane/table-reservation/store"

type Table struct {
	Base        `bson:",inline"`
	TableNumber string `json:"tableNumber" bson:"tableNumber" gorm:"type:varchar(50);uniqueIndex;not null"`
	Capacity    int    `json:"capacity" bson:"capacity" gorm:"not null"`
	Location    string `json:"location,omitempty" bson:"location,omitempty" gorm:"type:varchar(100)"`
	IsAvailable bool   `json:"isAvailable" bson:"isAvailable" gorm:"not null"`
}

func (t *Table) UniqueKeys() map[string]interface{} {
	return map[string]interface{}{"tableNumber": t.TableNumber}
}

// TableInput -> body untuk POST /tables
type TableInput struct {
	TableNumber string `json:"tableNumber" label:"Table number" validate:"required,max=50"`
	Capacity    int    `json:"capacity" label:"Table capacity" validate:"required,min=1,max=20"`
	Location    string `json:"location" label:"Location" validate:"max=100"`
	IsAvailable *bool  `json:"isAvailable"`
}

func (in *TableInput) Sanitize() {
	in.TableNumber = sanitize(in.TableNumber)
	in.Location = sanitize(in.Location)
}

// ToEntity builds a new table; availability defaults to true.
func (in TableInput) ToEntity() (Table, error) {
	table := Table{IsAvailable: true}
	if err := copyInto(&table, &in); err != nil {
		return Table{}, err
	}
	if in.IsAvailable != nil {
		table.IsAvailable = *in.IsAvailable
	}
	return table, nil
}

// TableUpdate -> body untuk PUT /tables/:id, hanya field yang dikirim yang diubah
type TableUpdate struct {
	TableNumber *string `json:"tableNumber" label:"Table number" validate:"omitnil,min=1,max=50"`
	Capacity    *int    `json:"capacity" label:"Table capacity" validate:"omitnil,min=1,max=20"`
	Location    *string `json:"location" label:"Location" validate:"omitnil,max=100"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (in *TableUpdate) Sanitize() {
	sanitizePtr(in.TableNumber)
	sanitizePtr(in.Location)
}

func (in TableUpdate) ToFields() store.Fields {
	fields := store.Fields{}
	setIf(fields, "tableNumber", in.TableNumber)
	setIf(fields, "capacity", in.Capacity)
	setIf(fields, "location", in.Location)
	setIf(fields, "isAvailable", in.IsAvailable)
	return fields
}
