package models

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Total int64          `json:"total"`
}

// SearchUsersResponse carries a search hit list; search is not
// paginated, so no pagination fields.
type SearchUsersResponse struct {
	Users []UserResponse `json:"users"`
}
