package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  pkgerrors "github.com/yungbote/ecohabit-backend/internal/pkg/errors"
  "github.com/yungbote/ecohabit-backend/internal/requestdata"
  "github.com/yungbote/ecohabit-backend/internal/services"
)

const maxNotesLength = 500

type ActivityHandler struct {
  activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
  return &ActivityHandler{activityService: activityService}
}

// Log records one activity for the authenticated user. Malformed input never
// reaches the transaction: ids are strictly typed and notes are bounded here.
func (ah *ActivityHandler) Log(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == 0 {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }

  var req struct {
    HabitID uint   `json:"habit_id"`
    Notes   string `json:"notes"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if req.HabitID == 0 {
    c.JSON(http.StatusBadRequest, gin.H{"error": "habit_id is required"})
    return
  }
  if len(req.Notes) > maxNotesLength {
    c.JSON(http.StatusBadRequest, gin.H{"error": "notes must be 500 characters or fewer"})
    return
  }

  result, err := ah.activityService.LogActivity(c.Request.Context(), rd.UserID, req.HabitID, req.Notes)
  if err != nil {
    switch {
    case errors.Is(err, pkgerrors.ErrHabitNotFound), errors.Is(err, pkgerrors.ErrUserNotFound):
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log activity"})
    }
    return
  }

  c.JSON(http.StatusOK, gin.H{
    "message":       "Activity logged successfully",
    "log":           result.Log,
    "pointsEarned":  result.PointsEarned,
    "totalPoints":   result.TotalPoints,
    "currentStreak": result.CurrentStreak,
    "newBadges":     result.NewBadges,
  })
}
