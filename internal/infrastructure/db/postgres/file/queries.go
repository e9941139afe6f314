package file

const (
	selectFileColumns = `f.id, f.uuid, f.owner_id, u.uuid, f.name, f.description, f.downloads, f.created_at, f.updated_at`

	SelectFilesByOwner = `
		SELECT ` + selectFileColumns + `
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.owner_id = $1
		ORDER BY f.name
	`
	SelectFileByUUID = `
		SELECT ` + selectFileColumns + `
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.uuid = $1
	`
	SelectFileByName = `
		SELECT ` + selectFileColumns + `
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.owner_id = $1 AND f.name = $2
	`
	InsertFile = `
		INSERT INTO files (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, uuid, owner_id, name, description, downloads, created_at, updated_at
	`

	// Row lock scoped to the files row only; the joined users row stays free.
	SelectFileForUpdate = `
		SELECT ` + selectFileColumns + `
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.id = $1
		FOR UPDATE OF f
	`
	SelectFilesByOwnerForUpdate = `
		SELECT ` + selectFileColumns + `
		FROM files f
		JOIN users u ON u.id = f.owner_id
		WHERE f.owner_id = $1
		FOR UPDATE OF f
	`

	UpdateFileName = `
		UPDATE files
		SET name = $2, updated_at = now()
		WHERE id = $1
	`
	UpdateFileDescription = `
		UPDATE files
		SET description = $2, updated_at = now()
		WHERE id = $1
	`
	ResetFileForOverwrite = `
		UPDATE files
		SET downloads = 0,
		    description = CASE WHEN $2 <> '' THEN $2 ELSE description END,
		    updated_at = now()
		WHERE id = $1
	`
	IncrementFileDownloads = `
		UPDATE files
		SET downloads = downloads + 1
		WHERE id = $1
	`
	DeleteFileByID = `DELETE FROM files WHERE id = $1`
	DeleteFilesByOwnerID = `DELETE FROM files WHERE owner_id = $1`

	// Link cascade runs inside the same transaction as the file mutation.
	DeleteLinksByFileID = `DELETE FROM links WHERE file_id = $1`
	DeleteLinksByOwnerID = `
		DELETE FROM links
		WHERE file_id IN (SELECT id FROM files WHERE owner_id = $1)
	`
)
