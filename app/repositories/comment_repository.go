package repositories

import (
	"context"

	"bloghouse/app/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// SQLCommentRepository implements CommentRepository on sqlite
type SQLCommentRepository struct {
	db *sqlx.DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository
func NewSQLCommentRepository(db *sqlx.DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

func selectComments() sq.SelectBuilder {
	return sq.Select(
		"c.id", "c.text", "c.author_id", "c.post_id",
		"COALESCE(u.name, '') AS author_name",
		"COALESCE(u.email, '') AS author_email",
	).
		From(CommentsTable + " c").
		LeftJoin(UsersTable + " u ON u.id = c.author_id")
}

// Create creates a new comment. Both foreign keys must reference existing rows.
func (r *SQLCommentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	ctx, span := startSpan(ctx, "comments.create", CommentsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := sq.Insert(CommentsTable).
		Columns("text", "author_id", "post_id").
		Values(comment.Text, comment.AuthorID, comment.PostID).
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
	comment.ID = int(id)
	return nil
}

// GetByID retrieves a comment by ID
func (r *SQLCommentRepository) GetByID(ctx context.Context, id int) (comment *models.Comment, err error) {
	ctx, span := startSpan(ctx, "comments.get_by_id", CommentsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := selectComments().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var c models.Comment
	if err := r.db.GetContext(ctx, &c, query, args...); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// ListByPost retrieves all comments for a post, oldest first
func (r *SQLCommentRepository) ListByPost(ctx context.Context, postID int) (comments []*models.Comment, err error) {
	ctx, span := startSpan(ctx, "comments.list_by_post", CommentsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := selectComments().Where(sq.Eq{"c.post_id": postID}).OrderBy("c.id").ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, err
	}
	return comments, nil
}
