package models

import "time"

// Base -> identitas dan timestamp yang dimiliki semua entity
type Base struct {
	ID        string    `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(24)"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (b *Base) DocumentID() string {
	return b.ID
}

func (b *Base) SetDocumentID(id string) {
	b.ID = id
}

func (b *Base) Touch(now time.Time, created bool) {
	if created {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
