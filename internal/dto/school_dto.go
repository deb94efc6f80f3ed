package dto

import (
	"time"

	"github.com/noah-isme/nido-go-api/internal/models"
)

// SchoolListRequest carries directory listing filters.
type SchoolListRequest struct {
	Search   string `json:"search"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// SchoolResponse is the public directory projection of a school.
type SchoolResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Programs  []string  `json:"programs"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SchoolListResult bundles directory items with pagination metadata.
type SchoolListResult struct {
	Items      []SchoolResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
	CacheHit   bool             `json:"-"`
}

// SchoolCreateRequest is the admin payload for onboarding a school.
type SchoolCreateRequest struct {
	Name     string   `json:"name" validate:"required,max=255"`
	Capacity int      `json:"capacity" validate:"gte=0"`
	Programs []string `json:"programs" validate:"dive,max=128"`
}

// SchoolUpdateRequest carries partial updates for a school.
type SchoolUpdateRequest struct {
	Name     *string   `json:"name" validate:"omitempty,max=255"`
	Capacity *int      `json:"capacity" validate:"omitempty,gte=0"`
	Programs *[]string `json:"programs" validate:"omitempty,dive,max=128"`
	Status   *string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// NewSchoolResponse converts a school model into its public projection.
func NewSchoolResponse(school models.School) SchoolResponse {
	return SchoolResponse{
		ID:        school.ID,
		Name:      school.Name,
		Capacity:  school.Capacity,
		Programs:  append([]string(nil), school.Programs...),
		Status:    school.Status,
		UpdatedAt: school.UpdatedAt,
	}
}

// NewSchoolResponseSlice converts a slice of school models.
func NewSchoolResponseSlice(schools []models.School) []SchoolResponse {
	items := make([]SchoolResponse, 0, len(schools))
	for _, school := range schools {
		items = append(items, NewSchoolResponse(school))
	}
	return items
}
