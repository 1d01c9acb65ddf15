package dto

type RegisterUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Gender       int     `json:"gender"`
	LookingFor   int     `json:"looking_for"`
	Age          int     `json:"age"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	SearchRadius int     `json:"search_radius"`
	AgeMin       int     `json:"age_min"`
	AgeMax       int     `json:"age_max"`
	Description  string  `json:"description"`
}

type UpdateUserRequest struct {
	Name         string  `json:"name"`
	Gender       int     `json:"gender"`
	LookingFor   int     `json:"looking_for"`
	Age          int     `json:"age"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	SearchRadius int     `json:"search_radius"`
	AgeMin       int     `json:"age_min"`
	AgeMax       int     `json:"age_max"`
	Description  string  `json:"description"`
}
