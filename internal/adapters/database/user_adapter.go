package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/mattn/go-sqlite3"
	"github.com/zatekoja/smart-health-assistant/internal/domain/entities"
	"github.com/zatekoja/smart-health-assistant/internal/domain/repositories"
	sqliteclient "github.com/zatekoja/smart-health-assistant/internal/infrastructure/clients/sqlite"
	apperrors "github.com/zatekoja/smart-health-assistant/pkg/errors"
)

// UserAdapter implements user persistence in the embedded SQLite database.
type UserAdapter struct {
	client *sqliteclient.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter.
func NewUserAdapter(client *sqliteclient.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("sqlite3", client.DB()),
	}
}

// Create inserts a user record. Duplicate username or email yields a
// conflict error.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	record := goqu.Record{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return apperrors.NewConflictError("username or email already exists")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}

	return nil
}

// GetByUsername retrieves a user by username.
func (a *UserAdapter) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query, args, err := a.db.From("users").
		Select("id", "username", "email", "password_hash", "created_at").
		Where(goqu.C("username").Eq(username)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user select query", err)
	}

	var user entities.User
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return &user, nil
}
