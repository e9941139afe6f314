package user

import (
	domain "file-storage-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           domain.ID(model.ID),
		UUID:         model.UUID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		Role:         model.Role,
		Email:        model.Email,
		FirstName:    model.FirstName,
		LastName:     model.LastName,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}
