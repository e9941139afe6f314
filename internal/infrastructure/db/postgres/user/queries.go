package user

const (
	SelectUsers = `
		SELECT id, uuid, username, password_hash, role, email, first_name, last_name, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
	SelectUserByUUID = `
		SELECT id, uuid, username, password_hash, role, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByUsername = `
		SELECT id, uuid, username, password_hash, role, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE username = $1
	`
	InsertUser = `
		INSERT INTO users (username, password_hash, role, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, uuid, username, password_hash, role, email, first_name, last_name, created_at, updated_at
	`
	UpdateUserByUUID = `
		UPDATE users
		SET username = $1,
		    email = $2,
		    first_name = $3,
		    last_name = $4,
		    updated_at = now()
		WHERE uuid = $5
		RETURNING
		  id, uuid, username, password_hash, role, email, first_name, last_name, created_at, updated_at
	`
	UpdatePasswordByID = `
		UPDATE users
		SET password_hash = $1,
		    updated_at = now()
		WHERE id = $2
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`
	DeleteUserByID = `
		DELETE FROM users
		WHERE id = $1
		RETURNING
		  id, uuid, username, password_hash, role, email, first_name, last_name, created_at, updated_at
	`
)
