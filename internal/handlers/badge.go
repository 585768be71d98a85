package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ecohabit-backend/internal/requestdata"
  "github.com/yungbote/ecohabit-backend/internal/services"
)

type BadgeHandler struct {
  badgeService services.BadgeService
}

func NewBadgeHandler(badgeService services.BadgeService) *BadgeHandler {
  return &BadgeHandler{badgeService: badgeService}
}

func (bh *BadgeHandler) Overview(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == 0 {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  overview, err := bh.badgeService.Overview(c.Request.Context(), rd.UserID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
    return
  }
  c.JSON(http.StatusOK, overview)
}
