package v1

type URIID struct {
	ID uint `uri:"id" binding:"required" example:"42"` // The ID of the resource
}

type URIKey struct {
	Key string `uri:"key" binding:"required" example:"diaMedicao"` // The key of the configuration
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// Responses without data only carry an error message.
type httpError struct {
	Error string `json:"error" example:"there is no contract matching your query"`
}

// defaultLimit is the maximum number of resources returned by list
// endpoints when no limit is requested.
const defaultLimit = 50
