package dto

import "time"

// CreateUserRequest is the payload for self-registration.
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// LoginRequest is the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest is the payload for starting a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the payload for completing a password reset.
type ResetPasswordRequest struct {
	Verifier string `json:"verifier"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

// RefreshTokenRequest is the payload for refresh and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest is the payload for a user editing their own profile.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// ChangePasswordRequest is the payload for a user changing their password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AdminCreateUserRequest is the payload for an Admin creating a user.
type AdminCreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// ClientRequest is the payload for creating a client.
type ClientRequest struct {
	Name       string   `json:"name" binding:"required"`
	Email      string   `json:"email" binding:"required,email"`
	Phone      string   `json:"phone"`
	Company    string   `json:"company"`
	Tags       []string `json:"tags"`
	AssignedTo string   `json:"assigned_to"`
}

// LeadRequest is the payload for creating a lead.
type LeadRequest struct {
	Title       string  `json:"title" binding:"required"`
	ContactName string  `json:"contact_name" binding:"required"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Source      string  `json:"source"`
	Value       float64 `json:"value"`
	Stage       string  `json:"stage"`
	AssignedTo  string  `json:"assigned_to"`
}

// TaskRequest is the payload for creating a task.
type TaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assigned_to"`
}

// NoteRequest is the payload for creating a note.
type NoteRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// ActivityRequest is the payload for posting to the activity feed.
type ActivityRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentRequest is the payload for commenting on an activity.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// SummarizeRequest is the payload for the AI summary passthrough.
type SummarizeRequest struct {
	RecordType string `json:"entity" binding:"required"`
	Data       string `json:"data" binding:"required"`
}
