package server

// Generic Swagger response envelopes to match API shape.
type DataResponse struct {
	Data   any    `json:"data"`
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}
