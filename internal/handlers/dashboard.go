package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  pkgerrors "github.com/yungbote/ecohabit-backend/internal/pkg/errors"
  "github.com/yungbote/ecohabit-backend/internal/requestdata"
  "github.com/yungbote/ecohabit-backend/internal/services"
)

type DashboardHandler struct {
  userService services.UserService
}

func NewDashboardHandler(userService services.UserService) *DashboardHandler {
  return &DashboardHandler{userService: userService}
}

func (dh *DashboardHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == 0 {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  dashboard, err := dh.userService.GetDashboard(c.Request.Context(), rd.UserID)
  if err != nil {
    if errors.Is(err, pkgerrors.ErrUserNotFound) {
      c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
      return
    }
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
    return
  }
  c.JSON(http.StatusOK, dashboard)
}
