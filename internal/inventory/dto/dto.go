package dto

type MovementFilters struct {
	CompanyID    string
	ResourceType string
	ResourceID   string
	Page         int
	PageSize     int
}
