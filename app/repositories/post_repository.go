package repositories

import (
	"context"

	"bloghouse/app/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// SQLPostRepository implements PostRepository on sqlite
type SQLPostRepository struct {
	db *sqlx.DB
}

// NewSQLPostRepository creates a new SQLPostRepository
func NewSQLPostRepository(db *sqlx.DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

func selectPosts() sq.SelectBuilder {
	return sq.Select(
		"p.id", "p.title", "p.subtitle", "p.date", "p.body", "p.img_url", "p.author_id",
		"COALESCE(u.name, '') AS author_name",
	).
		From(PostsTable + " p").
		LeftJoin(UsersTable + " u ON u.id = p.author_id")
}

// Create creates a new post
func (r *SQLPostRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, span := startSpan(ctx, "posts.create", PostsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := sq.Insert(PostsTable).
		Columns("title", "subtitle", "date", "body", "img_url", "author_id").
		Values(post.Title, post.Subtitle, post.Date, post.Body, post.ImgURL, post.AuthorID).
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
	post.ID = int(id)
	return nil
}

// GetByID retrieves a post by ID along with its author's name
func (r *SQLPostRepository) GetByID(ctx context.Context, id int) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "posts.get_by_id", PostsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := selectPosts().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var p models.Post
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// List retrieves all posts in publication order
func (r *SQLPostRepository) List(ctx context.Context) (posts []*models.Post, err error) {
	ctx, span := startSpan(ctx, "posts.list", PostsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := selectPosts().OrderBy("p.id").ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, err
	}
	return posts, nil
}

// ExistsByTitle reports whether a post other than excludeID already has title
func (r *SQLPostRepository) ExistsByTitle(ctx context.Context, title string, excludeID int) (exists bool, err error) {
	ctx, span := startSpan(ctx, "posts.exists_by_title", PostsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := sq.Select("COUNT(*)").
		From(PostsTable).
		Where(sq.Eq{"title": title}).
		Where(sq.NotEq{"id": excludeID}).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update overwrites the mutable fields of an existing post
func (r *SQLPostRepository) Update(ctx context.Context, post *models.Post) (err error) {
	ctx, span := startSpan(ctx, "posts.update", PostsTable)
	defer func() { endSpan(span, err) }()

	query, args, err := sq.Update(PostsTable).
		SetMap(map[string]interface{}{
			"title":     post.Title,
			"subtitle":  post.Subtitle,
			"body":      post.Body,
			"img_url":   post.ImgURL,
			"author_id": post.AuthorID,
		}).
		Where(sq.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	return expectOneRow(res)
}

// Delete removes a post and its comments in one transaction
func (r *SQLPostRepository) Delete(ctx context.Context, id int) (err error) {
	ctx, span := startSpan(ctx, "posts.delete", PostsTable)
	defer func() { endSpan(span, err) }()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := sq.Delete(CommentsTable).Where(sq.Eq{"post_id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	query, args, err = sq.Delete(PostsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if err = expectOneRow(res); err != nil {
		return err
	}
	return tx.Commit()
}
