package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"flame/pkg/dto"
	"flame/pkg/middleware"
	"flame/pkg/models"
	"flame/services/match/service"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// 다음 후보 조회
func (h *MatchHandler) FindCandidate(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	candidate, err := h.matchService.SelectCandidate(userID)
	if err != nil {
		if errors.Is(err, service.ErrNoCandidate) {
			// 보여줄 후보가 없는 것은 실패가 아님
			return echo.NewHTTPError(http.StatusNotFound, "No candidate available")
		}
		log.Printf("Failed to select candidate for user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to select candidate")
	}

	return c.JSON(http.StatusOK, dto.NewCandidateResponse(&candidate.User, candidate.DistanceKm))
}

// 스와이프 기록 및 매칭 판정
func (h *MatchHandler) SwipeUser(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	var req dto.SwipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.matchService.RecordSwipe(userID, req.SwipedID, req.Love)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfSwipe):
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot swipe yourself")
		case errors.Is(err, service.ErrSwipeConflict):
			return echo.NewHTTPError(http.StatusConflict, "Already swiped this user")
		default:
			log.Printf("Failed to record swipe %d -> %d: %v", userID, req.SwipedID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record swipe")
		}
	}

	resp := dto.SwipeResponse{Status: dto.SwipeStatusRecorded}
	if result.Matched {
		resp.Status = dto.SwipeStatusMatched
		resp.CoupleID = result.Couple.ID
	}
	return c.JSON(http.StatusOK, resp)
}

// 매칭 확인 처리
func (h *MatchHandler) TickSeen(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	coupleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid couple ID")
	}

	if err := h.matchService.TickSeen(coupleID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Couple not found")
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "Not a member of this couple")
		default:
			log.Printf("Failed to tick seen for couple %d: %v", coupleID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update couple")
		}
	}

	return c.NoContent(http.StatusOK)
}

// 내 커플 목록 조회
func (h *MatchHandler) FindCouples(c echo.Context) error {
	userID, ok := middleware.GetUserID(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User ID is required")
	}

	couples, err := h.matchService.GetCouples(userID)
	if err != nil {
		log.Printf("Failed to get couples for user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get couples")
	}

	resp := lo.Map(couples, func(couple models.Couple, _ int) dto.CoupleResponse {
		seen := couple.LowSeen
		if couple.HighID == userID {
			seen = couple.HighSeen
		}
		return dto.CoupleResponse{
			CoupleID:  couple.ID,
			PartnerID: couple.Partner(userID),
			Seen:      seen,
			CreatedAt: couple.CreatedAt,
		}
	})

	return c.JSON(http.StatusOK, resp)
}
