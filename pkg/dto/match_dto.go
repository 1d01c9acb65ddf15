package dto

import (
	"time"

	"flame/pkg/models"
)

// 스와이프 처리 결과
const (
	SwipeStatusRecorded = "recorded"
	SwipeStatusMatched  = "matched"
)

type SwipeRequest struct {
	SwipedID int  `json:"swiped_id"`
	Love     bool `json:"love"`
}

type SwipeResponse struct {
	Status   string `json:"status"`
	CoupleID int    `json:"couple_id,omitempty"`
}

type CandidateResponse struct {
	UserID      int     `json:"user_id"`
	Name        string  `json:"name"`
	Gender      int     `json:"gender"`
	Age         int     `json:"age"`
	DistanceKm  float64 `json:"distance_km"`
	Description string  `json:"description"`
}

type CoupleResponse struct {
	CoupleID  int       `json:"couple_id"`
	PartnerID int       `json:"partner_id"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCandidateResponse(user *models.User, distanceKm float64) CandidateResponse {
	return CandidateResponse{
		UserID:      user.ID,
		Name:        user.Name,
		Gender:      user.Gender,
		Age:         user.Age,
		DistanceKm:  distanceKm,
		Description: user.Description,
	}
}
