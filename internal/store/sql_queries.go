package store

import (
	"strings"

	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/Masterminds/squirrel"
)

// userColumns is the column order every user query selects and every
// scan expects.
var userColumns = []string{
	"user_id",
	"username",
	"email",
	"password_hash",
	"display_name",
	"created_at",
	"updated_at",
}

var usersTable = models.User{}.TableName()

func buildInsertUserQuery(b squirrel.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(
			user.UserID,
			user.Username,
			user.Email,
			user.PasswordHash,
			user.DisplayName,
			user.CreatedAt,
			user.UpdatedAt,
		).
		Suffix(returningUserColumns()).
		ToSql()
}

func buildSelectUserByUsernameQuery(b squirrel.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		ToSql()
}

func buildSelectUserByIDQuery(b squirrel.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
}

// buildSelectAllUsersQuery orders newest first; user_id (UUIDv7) breaks ties
// between records created within the same timestamp tick.
func buildSelectAllUsersQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		OrderBy("created_at DESC", "user_id DESC").
		ToSql()
}

// buildUpdateUserQuery rewrites the mutable columns only; username and
// created_at are immutable.
func buildUpdateUserQuery(b squirrel.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update(usersTable).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("display_name", user.DisplayName).
		Set("updated_at", user.UpdatedAt).
		Where(squirrel.Eq{"user_id": user.UserID}).
		Suffix(returningUserColumns()).
		ToSql()
}

func returningUserColumns() string {
	return "RETURNING " + strings.Join(userColumns, ", ")
}
