package model

type CreateScoreResponse struct {
	ID string `json:"id"`
}

type UpdateChanRequestBody struct {
	Notes string `json:"notes"`
	Lyric string `json:"lyric,omitempty"`
}

type BarErrorBody struct {
	Bar     int    `json:"bar"`
	Chan    int    `json:"chan"`
	Message string `json:"message"`
}
