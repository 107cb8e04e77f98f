package database

import (
	"context"

	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/store"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Collections groups the store of every resource.
type Collections struct {
	Tables         store.Collection[models.Table]
	Reservations   store.Collection[models.Reservation]
	Statuses       store.Collection[models.ReservationStatus]
	RestaurantInfo store.Collection[models.RestaurantInfo]
	Users          store.Collection[models.User]
}

func SQLCollections(db *gorm.DB) (Collections, error) {
	tables, err := store.NewSQLCollection[models.Table](db)
	if err != nil {
		return Collections{}, err
	}
	reservations, err := store.NewSQLCollection[models.Reservation](db)
	if err != nil {
		return Collections{}, err
	}
	statuses, err := store.NewSQLCollection[models.ReservationStatus](db)
	if err != nil {
		return Collections{}, err
	}
	info, err := store.NewSQLCollection[models.RestaurantInfo](db)
	if err != nil {
		return Collections{}, err
	}
	users, err := store.NewSQLCollection[models.User](db)
	if err != nil {
		return Collections{}, err
	}

	return Collections{
		Tables:         tables,
		Reservations:   reservations,
		Statuses:       statuses,
		RestaurantInfo: info,
		Users:          users,
	}, nil
}

// MongoCollections binds every resource to its collection and makes sure the unique indexes exist.
func MongoCollections(ctx context.Context, db *mongo.Database) (Collections, error) {
	tables := store.NewMongoCollection[models.Table](db, "tables")
	reservations := store.NewMongoCollection[models.Reservation](db, "reservations")
	statuses := store.NewMongoCollection[models.ReservationStatus](db, "reservationstatuses")
	info := store.NewMongoCollection[models.RestaurantInfo](db, "restaurantinfos")
	users := store.NewMongoCollection[models.User](db, "users")

	for _, ensure := range []func(context.Context) error{
		tables.EnsureIndexes,
		statuses.EnsureIndexes,
		users.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return Collections{}, err
		}
	}

	return Collections{
		Tables:         tables,
		Reservations:   reservations,
		Statuses:       statuses,
		RestaurantInfo: info,
		Users:          users,
	}, nil
}
