package link

import (
	"file-storage-api/internal/domain/file"
	domain "file-storage-api/internal/domain/link"
	"file-storage-api/internal/domain/user"
)

func fromDBModel(model *Link) *domain.Link {
	var l = &domain.Link{
		ID:   domain.ID(model.ID),
		Href: model.Href,

		FileID:   file.ID(model.FileID),
		FileUUID: model.FileUUID,
		FileName: model.FileName,

		OwnerID:   user.ID(model.OwnerID),
		OwnerUUID: model.OwnerUUID,

		CreatedAt: model.CreatedAt,
		ExpireAt:  model.ExpireAt,
	}

	return l
}

func fromDBModels(models *Links) domain.Links {
	ls := make(domain.Links, len(*models))
	for idx, l := range *models {
		ls[idx] = fromDBModel(l)
	}

	return ls
}
