package domain

// ContactRequest is a visitor contact form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
	Message string `json:"message" validate:"required,min=10,max=4000"`
}

// NewsletterSignup is a newsletter subscription request.
type NewsletterSignup struct {
	Email string `json:"email" validate:"required,email"`
}
