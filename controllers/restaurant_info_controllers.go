package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

const msgInfoNotSetUp = "Restaurant information not set up yet."

// RestaurantInfoController works on the single restaurant info document.
type RestaurantInfoController struct {
	Info     store.Collection[models.RestaurantInfo]
	Notifier services.Notifier
}

func NewRestaurantInfoController(info store.Collection[models.RestaurantInfo], notifier services.Notifier) *RestaurantInfoController {
	return &RestaurantInfoController{Info: info, Notifier: notifier}
}

// GetRestaurantInfo -> tidak pernah 404, data kosong jika belum diisi
func (ic *RestaurantInfoController) GetRestaurantInfo(c *gin.Context) {
	info, err := ic.Info.FindOne(c.Request.Context(), nil)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondJSON(c, http.StatusOK, msgInfoNotSetUp, nil)
			return
		}
		c.Error(err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant information retrieved successfully.", info)
}

// UpdateRestaurantInfo -> upsert, dokumen dibuat saat pertama kali ditulis
func (ic *RestaurantInfoController) UpdateRestaurantInfo(c *gin.Context) {
	var in models.RestaurantInfoInput
	if !bindInput(c, &in) {
		return
	}

	info, err := ic.Info.UpsertOne(c.Request.Context(), nil, in.ToFields())
	if err != nil {
		respondError(c, err, msgInfoNotSetUp)
		return
	}

	publish(c, ic.Notifier, services.EventRestaurantInfoUpdated, info)
	utils.InfoLogger.Printf("Restaurant information updated: %s", info.Name)
	utils.RespondJSON(c, http.StatusOK, "Restaurant information updated successfully.", info)
}

func (ic *RestaurantInfoController) DeleteRestaurantInfo(c *gin.Context) {
	info, err := ic.Info.DeleteOne(c.Request.Context(), nil)
	if err != nil {
		respondError(c, err, msgInfoNotSetUp)
		return
	}

	publish(c, ic.Notifier, services.EventRestaurantInfoDeleted, info)
	c.Status(http.StatusNoContent)
}
