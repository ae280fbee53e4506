package moments

type MealMomentDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TimeInDay   string `json:"timeInDay,omitempty"`
}

type ListMealMomentsResponse struct {
	Moments []MealMomentDTO `json:"moments"`
}
