package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/models"
	"github.com/yeremiapane/table-reservation/services"
	"github.com/yeremiapane/table-reservation/store"
	"github.com/yeremiapane/table-reservation/utils"
)

const (
	msgTableNotFound  = "Table not found"
	msgInvalidTableID = "Invalid table ID format"
)

type TableController struct {
	Tables   store.Collection[models.Table]
	Notifier services.Notifier
}

func NewTableController(tables store.Collection[models.Table], notifier services.Notifier) *TableController {
	return &TableController{Tables: tables, Notifier: notifier}
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var in models.TableInput
	if !bindInput(c, &in) {
		return
	}

	table, err := in.ToEntity()
	if err != nil {
		c.Error(err)
		return
	}
	if err := tc.Tables.Insert(c.Request.Context(), &table); err != nil {
		respondError(c, err, msgTableNotFound)
		return
	}

	publish(c, tc.Notifier, services.EventTableCreated, table)
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> daftar meja dengan filter dan paginasi
func (tc *TableController) GetAllTables(c *gin.Context) {
	listResources(c, tc.Tables, "Tables retrieved successfully")
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := paramID(c, msgInvalidTableID)
	if !ok {
		return
	}

	table, err := tc.Tables.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgTableNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table retrieved successfully", table)
}

// UpdateTable -> hanya field yang dikirim yang diubah
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, ok := paramID(c, msgInvalidTableID)
	if !ok {
		return
	}
	var in models.TableUpdate
	if !bindInput(c, &in) {
		return
	}

	table, err := tc.Tables.UpdateByID(c.Request.Context(), id, in.ToFields())
	if err != nil {
		respondError(c, err, msgTableNotFound)
		return
	}

	publish(c, tc.Notifier, services.EventTableUpdated, table)
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := paramID(c, msgInvalidTableID)
	if !ok {
		return
	}

	table, err := tc.Tables.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgTableNotFound)
		return
	}

	publish(c, tc.Notifier, services.EventTableDeleted, table)
	utils.InfoLogger.Printf("Table %s deleted", table.TableNumber)
	c.Status(http.StatusNoContent)
}
