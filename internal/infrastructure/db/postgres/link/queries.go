package link

const (
	selectLinkColumns = `l.id, l.href, l.file_id, f.uuid, f.name, f.owner_id, u.uuid, l.created_at, l.expire_at`

	SelectLinkByHref = `
		SELECT ` + selectLinkColumns + `
		FROM links l
		JOIN files f ON f.id = l.file_id
		JOIN users u ON u.id = f.owner_id
		WHERE l.href = $1
	`
	SelectLinksByFile = `
		SELECT ` + selectLinkColumns + `
		FROM links l
		JOIN files f ON f.id = l.file_id
		JOIN users u ON u.id = f.owner_id
		WHERE l.file_id = $1
		ORDER BY l.id
	`
	InsertLink = `
		INSERT INTO links (file_id, href, expire_at)
		VALUES ($1, $2, $3)
		RETURNING id, href, file_id, created_at, expire_at
	`
	DeleteLinkByID      = `DELETE FROM links WHERE id = $1`
	DeleteLinksByFileID = `DELETE FROM links WHERE file_id = $1`
	DeleteExpiredLinksByOwner = `
		DELETE FROM links
		WHERE expire_at IS NOT NULL
		  AND expire_at < now()
		  AND file_id IN (SELECT id FROM files WHERE owner_id = $1)
	`
)
