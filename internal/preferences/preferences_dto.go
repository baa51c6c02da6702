package preferences

type UpdateRequest struct {
	Language string `json:"language" binding:"omitempty,bcp47_language_tag"`
	Currency string `json:"currency" binding:"omitempty,uppercase"`
}

type PreferencesResponse struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
}
