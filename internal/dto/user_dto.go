package dto

// SaveUserRequest stores a bare identity with its role string.
type SaveUserRequest struct {
	UID   string `json:"uid" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// RegisterStudentRequest carries the full student registration payload.
type RegisterStudentRequest struct {
	UID              string `json:"uid" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Role             string `json:"role"`
	StudentName      string `json:"studentName" validate:"required"`
	StudentID        string `json:"studentId" validate:"required"`
	AcademicYear     string `json:"academicYear" validate:"required"`
	AcademicSemester string `json:"academicSemester" validate:"required"`
	CreatedAt        string `json:"createdAt"`
}

// RegisterTeacherRequest carries the teacher registration payload.
type RegisterTeacherRequest struct {
	UID         string `json:"uid" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role"`
	StudentName string `json:"studentName" validate:"required"`
	CreatedAt   string `json:"createdAt"`
}

// DeletedUserResponse echoes the identity snapshot of a removed account.
type DeletedUserResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	StudentName string `json:"studentName,omitempty"`
}
