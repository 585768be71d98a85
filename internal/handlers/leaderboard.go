package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/ecohabit-backend/internal/services"
)

type LeaderboardHandler struct {
  leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
  return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (lh *LeaderboardHandler) Top(c *gin.Context) {
  entries, err := lh.leaderboardService.Top(c.Request.Context(), 10)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
    return
  }
  c.JSON(http.StatusOK, entries)
}
