package user

import (
	"file-storage-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	var u = User{
		UUID:      uDomain.UUID,
		Username:  uDomain.Username,
		Email:     uDomain.Email,
		FirstName: uDomain.FirstName,
		LastName:  uDomain.LastName,
		IsAdmin:   uDomain.IsAdmin(),
		CreatedAt: uDomain.CreatedAt,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainUser(uRequest Request) user.User {
	var u = user.User{
		Username:  uRequest.Username,
		Email:     uRequest.Email,
		FirstName: uRequest.FirstName,
		LastName:  uRequest.LastName,
	}

	return u
}
