package models

import "time"

const (
	MALE = iota
	FEMALE
)

type User struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:100" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex" json:"email"`
	Gender       int       `json:"gender"`
	LookingFor   int       `json:"looking_for"`
	Age          int       `json:"age"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	SearchRadius int       `gorm:"default:50" json:"search_radius"` // km
	AgeMin       int       `gorm:"default:18" json:"age_min"`
	AgeMax       int       `gorm:"default:99" json:"age_max"`
	Description  string    `gorm:"size:500" json:"description"`
	LastSeen     time.Time `gorm:"index" json:"last_seen"`
	Alert        bool      `gorm:"default:true" json:"alert"`
}
