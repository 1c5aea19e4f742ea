package repositories

import (
	"context"

	"bloghouse/app/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var userColumns = []string{"id", "name", "email", "password", "role"}

// SQLUserRepository implements UserRepository on sqlite
type SQLUserRepository struct {
	db *sqlx.DB
}

// NewSQLUserRepository creates a new SQLUserRepository
func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// Register inserts the user in a single statement so that the
// first-account check and the insert cannot interleave.
func (r *SQLUserRepository) Register(ctx context.Context, user *models.User) (err error) {
	ctx, span := startSpan(ctx, "users.register", UsersTable)
	defer func() { endSpan(span, err) }()

	if user.Role == "" {
		user.Role = models.RoleMember
	}
	query, args, err := sq.Insert(UsersTable).
		Columns("name", "email", "password", "role").
		Values(
			user.Name,
			user.Email,
			user.Password,
			sq.Expr("CASE WHEN (SELECT COUNT(*) FROM users) = 0 THEN ? ELSE ? END", models.RoleAdmin, user.Role),
		).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)

	return translateError(r.db.GetContext(ctx, &user.Role, "SELECT role FROM users WHERE id = ?", user.ID))
}

// GetByID retrieves a user by ID
func (r *SQLUserRepository) GetByID(ctx context.Context, id int) (user *models.User, err error) {
	ctx, span := startSpan(ctx, "users.get_by_id", UsersTable)
	defer func() { endSpan(span, err) }()

	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a user by email address
func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (user *models.User, err error) {
	ctx, span := startSpan(ctx, "users.get_by_email", UsersTable)
	defer func() { endSpan(span, err) }()

	return r.getOne(ctx, sq.Eq{"email": email})
}

// ExistsByEmail reports whether an account uses email
func (r *SQLUserRepository) ExistsByEmail(ctx context.Context, email string) (exists bool, err error) {
	ctx, span := startSpan(ctx, "users.exists_by_email", UsersTable)
	defer func() { endSpan(span, err) }()

	query, args, err := sq.Select("COUNT(*)").From(UsersTable).Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return false, err
	}
	return n > 0, nil
}

// List retrieves every user ordered by ID
func (r *SQLUserRepository) List(ctx context.Context) (users []*models.User, err error) {
	ctx, span := startSpan(ctx, "users.list", UsersTable)
	defer func() { endSpan(span, err) }()

	query, args, err := sq.Select(userColumns...).From(UsersTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

// SetRole changes the role of an existing user
func (r *SQLUserRepository) SetRole(ctx context.Context, id int, role models.Role) (err error) {
	ctx, span := startSpan(ctx, "users.set_role", UsersTable)
	defer func() { endSpan(span, err) }()

	query, args, err := sq.Update(UsersTable).Set("role", role).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	return expectOneRow(res)
}

func (r *SQLUserRepository) getOne(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := sq.Select(userColumns...).From(UsersTable).Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}
