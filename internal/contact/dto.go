// AngelaMos | 2026
// dto.go

package contact

type CreateContactRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Phone    string `json:"phone"    validate:"required,min=3,max=30"`
	Favorite bool   `json:"favorite"`
}

type UpdateContactRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email,max=255"`
	Phone    *string `json:"phone,omitempty"    validate:"omitempty,min=3,max=30"`
	Favorite *bool   `json:"favorite,omitempty"`
}

func (r *UpdateContactRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil &&
		r.Favorite == nil
}

type UpdateFavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

type ContactResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

func ToContactResponse(c *Contact) ContactResponse {
	return ContactResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Favorite: c.Favorite,
	}
}

func ToContactResponseList(contacts []Contact) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		responses = append(responses, ToContactResponse(&c))
	}
	return responses
}
