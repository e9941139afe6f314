package link

import (
	"time"

	"file-storage-api/internal/domain/link"
)

func ToResponseLink(lDomain link.Link, shareURL string, fileSize int64) Link {
	var l = Link{
		Href:     shareURL,
		FileName: lDomain.FileName,
		FileSize: fileSize,
	}
	if lDomain.ExpireAt != nil {
		l.ExpireAt = lDomain.ExpireAt.UTC().Format(time.RFC3339)
	}

	return l
}

func ToResponseLinks(lsDomain link.Links, shareURL func(l *link.Link) string, fileSize func(l *link.Link) int64) Links {
	ls := make(Links, len(lsDomain))
	for idx, l := range lsDomain {
		ls[idx] = ToResponseLink(*l, shareURL(l), fileSize(l))
	}

	return ls
}
