package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ecohabit-backend/internal/requestdata"
  "github.com/yungbote/ecohabit-backend/internal/services"
)

type AnalyticsHandler struct {
  analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
  return &AnalyticsHandler{analyticsService: analyticsService}
}

func (anh *AnalyticsHandler) Summary(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == 0 {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  summary, err := anh.analyticsService.Summary(c.Request.Context(), rd.UserID)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics data"})
    return
  }
  c.JSON(http.StatusOK, summary)
}
