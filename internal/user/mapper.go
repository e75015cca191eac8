package user

import "github.com/google/uuid"

func ToView(u *User) UserView {
	return UserView{
		UserUID:  u.ID,
		Name:     u.Name,
		LastName: u.SurName,
		Email:    u.Email,
	}
}

// FromView is the inverse of ToView. The password is left empty.
func FromView(v UserView) User {
	return User{
		ID:      v.UserUID,
		Name:    v.Name,
		SurName: v.LastName,
		Email:   v.Email,
	}
}

func ToViews(users []*User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, ToView(u))
	}
	return views
}

// Mapper builds new entities from requests. NewID defaults to uuid.New.
type Mapper struct {
	NewID func() uuid.UUID
}

// FromCreateRequest maps req to a new User with a fresh id.
func (m Mapper) FromCreateRequest(req CreateUserRequest) User {
	newID := m.NewID
	if newID == nil {
		newID = uuid.New
	}

	return User{
		ID:       newID(),
		Name:     req.Name,
		SurName:  req.LastName,
		Email:    req.Email,
		Password: req.Password,
	}
}
