package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ecohabit-backend/internal/services"
)

type HabitHandler struct {
  habitService services.HabitService
}

func NewHabitHandler(habitService services.HabitService) *HabitHandler {
  return &HabitHandler{habitService: habitService}
}

func (hh *HabitHandler) List(c *gin.Context) {
  habits, err := hh.habitService.ListHabits(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch habits"})
    return
  }
  c.JSON(http.StatusOK, habits)
}
