package dto

// ModuleCreateRequest describes the payload for creating a course module.
// The enroll key is immutable once created.
type ModuleCreateRequest struct {
	Name      string `json:"name" validate:"required"`
	Year      int    `json:"year" validate:"required,gte=2000"`
	Semester  int    `json:"semester" validate:"required,gte=1,lte=2"`
	EnrollKey string `json:"enroll_key" validate:"required"`
}
