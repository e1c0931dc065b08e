// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const userColumns = `id, username, email, password_hash, role, is_admin, is_active,
	reset_password_token, reset_password_expires, created_at`

// userColumnNames lists userColumns for query builders.
var userColumnNames = []string{
	"id", "username", "email", "password_hash", "role", "is_admin", "is_active",
	"reset_password_token", "reset_password_expires", "created_at",
}

const (
	createUser = `INSERT INTO users (id, username, email, password_hash, role, is_admin, is_active)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns + `;`

	findUserByIdentifier = `SELECT ` + userColumns + `
	FROM users
	WHERE username = $1 OR email = $1
	LIMIT 1;`

	findUserByID = `SELECT ` + userColumns + `
	FROM users
	WHERE id = $1;`

	setResetToken = `UPDATE users
	SET reset_password_token = $2, reset_password_expires = $3
	WHERE id = $1;`

	setPassword = `UPDATE users
	SET password_hash = $2, reset_password_token = NULL, reset_password_expires = NULL
	WHERE id = $1;`

	clearExpiredResetTokens = `UPDATE users
	SET reset_password_token = NULL, reset_password_expires = NULL
	WHERE reset_password_expires IS NOT NULL AND reset_password_expires < $1;`
)

const (
	loadCredential = `SELECT token FROM credentials WHERE id = 1;`

	saveCredential = `INSERT INTO credentials (id, token, saved_at)
	VALUES (1, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (id) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at;`

	clearCredential = `DELETE FROM credentials;`
)
