package domain

// Form DTOs bound from HTML form submissions. Schema-level constraints live
// in the validate tags; domain rules (duplicate email, password match) are
// the registrar's job.

type SignupForm struct {
	Name                 string `validate:"required,max=50"`
	Email                string `validate:"required,email,max=255"`
	Password             string `validate:"required,min=8,max=72"`
	PasswordConfirmation string `validate:"required"`
}

type PostForm struct {
	Title   string `validate:"required,max=40"`
	Content string `validate:"required,max=200"`
}
