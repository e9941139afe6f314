package link

type (
	Link struct {
		Href     string `json:"href"`
		FileName string `json:"file_name"`
		FileSize int64  `json:"file_size"`
		// ExpireAt is empty for links that never expire.
		ExpireAt string `json:"expire_at"`
	}
	Links []Link

	CreateRequest struct {
		// Duration is the link lifetime in minutes; zero or negative
		// means the link never expires.
		Duration int `json:"duration"`
	}

	ResponseData struct {
		Data Links `json:"data"`
	}
)
