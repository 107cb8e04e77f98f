package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

// respondError mengklasifikasikan error: validasi/duplikat -> 400, tidak ditemukan -> 404,
// sisanya diteruskan ke ErrorHandler (500)
func respondError(c *gin.Context, err error, notFoundMessage string) {
	var validationErr *models.ValidationError
	var dupErr *store.DuplicateKeyError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &dupErr):
		utils.RespondError(c, http.StatusBadRequest, duplicateMessage(dupErr))
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, notFoundMessage)
	default:
		c.Error(err)
	}
}

func duplicateMessage(err *store.DuplicateKeyError) string {
	if err.Field == "" {
		return "Duplicate value already exists"
	}
	return fmt.Sprintf("Duplicate value for %s: '%v' already exists", err.Field, err.Value)
}

type sanitizer interface {
	Sanitize()
}

// bindInput decodes the JSON body into in, sanitizes it and runs the validation rules.
// It writes the 400 response itself and returns false when the input is rejected.
func bindInput(c *gin.Context, in sanitizer) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	in.Sanitize()
	if err := models.Validate(in); err != nil {
		respondError(c, err, "")
		return false
	}
	return true
}

// paramID -> validasi :id, 400 dengan invalidMessage jika formatnya salah
func paramID(c *gin.Context, invalidMessage string) (string, bool) {
	id, ok := utils.ToObjectID(c.Param("id"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, invalidMessage)
		return "", false
	}
	return id, true
}

// listResources is the shared List operation: filters and pagination from the query string,
// one page of items plus the total count.
func listResources[T any](c *gin.Context, coll store.Collection[T], message string) {
	params := utils.QueryParams(c.Request.URL.Query())
	filter := utils.BuildQueryFilters(params)
	page := utils.GetPaginationOptions(params)

	items, err := coll.Find(c.Request.Context(), filter, page.FindOptions())
	if err != nil {
		c.Error(err)
		return
	}
	total, err := coll.Count(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	utils.RespondList(c, http.StatusOK, message, items, page.Meta(total))
}

func publish(c *gin.Context, notifier services.Notifier, eventType string, data interface{}) {
	if notifier == nil {
		return
	}
	if err := notifier.Publish(c.Request.Context(), services.NewEvent(eventType, data)); err != nil {
		utils.ErrorLogger.Warnf("publish %s failed: %v", eventType, err)
	}
}
