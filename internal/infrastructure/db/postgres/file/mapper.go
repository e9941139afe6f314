package file

import (
	domain "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		ID:        domain.ID(model.ID),
		UUID:      model.UUID,
		OwnerID:   user.ID(model.OwnerID),
		OwnerUUID: model.OwnerUUID,

		Name:        model.Name,
		Description: model.Description,
		Downloads:   model.Downloads,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
