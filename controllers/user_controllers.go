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
	msgUserNotFound  = "User not found"
	msgInvalidUserID = "Invalid user ID format"
)

type UserController struct {
	Users    store.Collection[models.User]
	Notifier services.Notifier
}

func NewUserController(users store.Collection[models.User], notifier services.Notifier) *UserController {
	return &UserController{Users: users, Notifier: notifier}
}

// CreateUser -> user biasanya dibuat lewat login Google, endpoint ini untuk admin
func (uc *UserController) CreateUser(c *gin.Context) {
	var in models.UserInput
	if !bindInput(c, &in) {
		return
	}

	user, err := in.ToEntity()
	if err != nil {
		c.Error(err)
		return
	}
	if err := uc.Users.Insert(c.Request.Context(), &user); err != nil {
		respondError(c, err, msgUserNotFound)
		return
	}

	publish(c, uc.Notifier, services.EventUserCreated, user)
	utils.RespondJSON(c, http.StatusCreated, "User created successfully", user)
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	listResources(c, uc.Users, "Users fetched successfully")
}

func (uc *UserController) GetUserByID(c *gin.Context) {
	id, ok := paramID(c, msgInvalidUserID)
	if !ok {
		return
	}

	user, err := uc.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgUserNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User fetched successfully", user)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, msgInvalidUserID)
	if !ok {
		return
	}
	var in models.UserUpdate
	if !bindInput(c, &in) {
		return
	}

	user, err := uc.Users.UpdateByID(c.Request.Context(), id, in.ToFields())
	if err != nil {
		respondError(c, err, msgUserNotFound)
		return
	}

	publish(c, uc.Notifier, services.EventUserUpdated, user)
	utils.RespondJSON(c, http.StatusOK, "User updated successfully", user)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, msgInvalidUserID)
	if !ok {
		return
	}

	user, err := uc.Users.DeleteByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, msgUserNotFound)
		return
	}

	publish(c, uc.Notifier, services.EventUserDeleted, user)
	utils.InfoLogger.Printf("User %s deleted", user.ID)
	c.Status(http.StatusNoContent)
}
