package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/tracing"
)

var userColumns = []string{"id", "uuid", "name", "age", "email", "encrypted_password", "created_at", "updated_at"}

type UserRepository struct {
	db *sqlite.DB
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var user domain.User
	var age sql.NullInt64

	err := row.Scan(
		&user.ID,
		&user.UUID,
		&user.Name,
		&age,
		&user.Email,
		&user.EncryptedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return domain.User{}, err
	}

	if age.Valid {
		value := int(age.Int64)
		user.Age = &value
	}

	return user, nil
}

func (ur *UserRepository) getOne(ctx context.Context, q sq.SelectBuilder) (domain.User, error) {
	stmt, args, err := q.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	user, err := scanUser(ur.db.QueryRowContext(ctx, stmt, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	return ur.getOne(ctx, query)
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1)

	return ur.getOne(ctx, query)
}

// GetByUUIDAndToken joins the token allow-list: a cryptographically valid
// token that was revoked no longer resolves a user.
func (ur *UserRepository) GetByUUIDAndToken(ctx context.Context, uid, token string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(
		"users.id", "users.uuid", "users.name", "users.age", "users.email",
		"users.encrypted_password", "users.created_at", "users.updated_at").
		From("users").
		Join("user_tokens ON user_tokens.user_id = users.id").
		Where(sq.Eq{"users.uuid": uid}).
		Where(sq.Eq{"user_tokens.token": token}).
		Limit(1)

	return ur.getOne(ctx, query)
}

func (ur *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		OrderBy("id ASC")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	users := []domain.User{}

	for rows.Next() {
		user, err := scanUser(rows)

		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "name", "age", "email", "encrypted_password", "created_at", "updated_at").
		Values(user.UUID.String(), user.Name, user.Age, user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err := ur.db.ExecContext(ctx, stmt, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateEmail
		}

		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return ur.GetByUUID(ctx, user.UUID.String())
}

// Update applies the column set in one statement; uniqueness conflicts on
// email surface as ErrDuplicateEmail.
func (ur *UserRepository) Update(ctx context.Context, userID int, columns map[string]any) (domain.User, error) {
	query := ur.db.QueryBuilder.Update("users").
		SetMap(columns).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": userID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateEmail
		}

		return domain.User{}, err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.User{}, err
	}

	if affected == 0 {
		return domain.User{}, domain.ErrNotFound
	}

	return ur.getOne(ctx, ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		Limit(1))
}

// AppendToken is a single INSERT so concurrent logins never clobber each
// other's additions.
func (ur *UserRepository) AppendToken(ctx context.Context, userID int, token string) error {
	query := ur.db.QueryBuilder.Insert("user_tokens").
		Columns("user_id", "token", "created_at").
		Values(userID, token, time.Now().UTC()).
		Suffix("ON CONFLICT DO NOTHING")

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)
	return err
}

func (ur *UserRepository) RemoveToken(ctx context.Context, userID int, token string) error {
	query := ur.db.QueryBuilder.Delete("user_tokens").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"token": token})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)
	return err
}

func (ur *UserRepository) ClearTokens(ctx context.Context, userID int) error {
	query := ur.db.QueryBuilder.Delete("user_tokens").
		Where(sq.Eq{"user_id": userID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)
	return err
}

func (ur *UserRepository) SetAvatar(ctx context.Context, userID int, avatar []byte) error {
	query := ur.db.QueryBuilder.Update("users").
		Set("avatar", avatar).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": userID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (ur *UserRepository) GetAvatarByUUID(ctx context.Context, uid string) ([]byte, error) {
	query := ur.db.QueryBuilder.Select("avatar").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	var avatar []byte

	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(&avatar)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	if len(avatar) == 0 {
		return nil, domain.ErrNotFound
	}

	return avatar, nil
}

// DeleteWithTasks runs the cascade in one transaction, tasks first, so a
// mid-failure can never leave an account with invisible ghost tasks.
func (ur *UserRepository) DeleteWithTasks(ctx context.Context, userID int) error {
	return tracing.DatabaseSpanWrapper(ctx, "users", "cascade_delete", func(ctx context.Context) error {
		return ur.deleteWithTasks(ctx, userID)
	})
}

func (ur *UserRepository) deleteWithTasks(ctx context.Context, userID int) error {
	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		return err
	}

	defer tx.Rollback()

	for _, table := range []string{"tasks", "user_tokens"} {
		stmt, args, err := ur.db.QueryBuilder.Delete(table).
			Where(sq.Eq{"user_id": userID}).
			ToSql()

		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			slog.Error("Error deleting user records", "table", table, "error", err)
			return err
		}
	}

	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}
