package file

import (
	"file-storage-api/internal/domain/file"
)

type Sizer func(f *file.File) int64

func ToResponseFile(fDomain file.File, size int64) File {
	var f = File{
		ID:          fDomain.UUID,
		Name:        fDomain.Name,
		Description: fDomain.Description,
		Size:        size,
		Downloads:   fDomain.Downloads,
		CreatedAt:   fDomain.CreatedAt,
		UpdatedAt:   fDomain.UpdatedAt,
	}

	return f
}

func ToResponseFiles(fsDomain file.Files, size Sizer) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f, size(f))
	}

	return fs
}
