package mock

import (
	"context"
	"sort"
	"sync"

	"bloghouse/app/models"
	"bloghouse/app/repositories"
)

// Store holds every table in memory so that cross-table rules
// (foreign keys, cascade on post delete) behave like the sqlite store.
type Store struct {
	mutex    sync.RWMutex
	users    map[int]*models.User
	posts    map[int]*models.Post
	comments map[int]*models.Comment
	nextID   map[string]int

	// Err, when set, is returned by every call. Used to simulate an
	// unavailable store.
	Err error
}

type UserRepository struct{ s *Store }
type PostRepository struct{ s *Store }
type CommentRepository struct{ s *Store }

func NewStore() *Store {
	return &Store{
		users:    make(map[int]*models.User),
		posts:    make(map[int]*models.Post),
		comments: make(map[int]*models.Comment),
		nextID:   make(map[string]int),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s} }

// Clear drops every row and resets the id sequences.
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.users = make(map[int]*models.User)
	s.posts = make(map[int]*models.Post)
	s.comments = make(map[int]*models.Comment)
	s.nextID = make(map[string]int)
}

func (s *Store) next(table string) int {
	s.nextID[table]++
	return s.nextID[table]
}

// UserRepository implementation

func (m *UserRepository) Register(ctx context.Context, user *models.User) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}

	for _, u := range m.s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	if len(m.s.users) == 0 {
		user.Role = models.RoleAdmin
	} else if user.Role == "" {
		user.Role = models.RoleMember
	}
	user.ID = m.s.next(repositories.UsersTable)
	stored := *user
	m.s.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	u, exists := m.s.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	for _, u := range m.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err == repositories.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	users := make([]*models.User, 0, len(m.s.users))
	for _, u := range m.s.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *UserRepository) SetRole(ctx context.Context, id int, role models.Role) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}

	u, exists := m.s.users[id]
	if !exists {
		return repositories.ErrNotFound
	}
	u.Role = role
	return nil
}

// Count returns the number of stored users.
func (m *UserRepository) Count() int {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	return len(m.s.users)
}

// PostRepository implementation

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}

	if _, exists := m.s.users[post.AuthorID]; !exists {
		return repositories.ErrReference
	}
	for _, p := range m.s.posts {
		if p.Title == post.Title {
			return repositories.ErrDuplicate
		}
	}
	post.ID = m.s.next(repositories.PostsTable)
	stored := *post
	stored.Comments = nil
	m.s.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	p, exists := m.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return m.s.withAuthor(p), nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	posts := make([]*models.Post, 0, len(m.s.posts))
	for _, p := range m.s.posts {
		posts = append(posts, m.s.withAuthor(p))
	}
	// Sort posts by ID to ensure consistent ordering
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *PostRepository) ExistsByTitle(ctx context.Context, title string, excludeID int) (bool, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return false, m.s.Err
	}

	for _, p := range m.s.posts {
		if p.Title == title && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}

	existing, exists := m.s.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	if _, exists := m.s.users[post.AuthorID]; !exists {
		return repositories.ErrReference
	}
	existing.Title = post.Title
	existing.Subtitle = post.Subtitle
	existing.Body = post.Body
	existing.ImgURL = post.ImgURL
	existing.AuthorID = post.AuthorID
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}

	if _, exists := m.s.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	for cid, c := range m.s.comments {
		if c.PostID == id {
			delete(m.s.comments, cid)
		}
	}
	delete(m.s.posts, id)
	return nil
}

// Count returns the number of stored posts.
func (m *PostRepository) Count() int {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	return len(m.s.posts)
}

// CommentRepository implementation

func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()
	if m.s.Err != nil {
		return m.s.Err
	}

	if _, exists := m.s.users[comment.AuthorID]; !exists {
		return repositories.ErrReference
	}
	if _, exists := m.s.posts[comment.PostID]; !exists {
		return repositories.ErrReference
	}
	comment.ID = m.s.next(repositories.CommentsTable)
	stored := *comment
	m.s.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	c, exists := m.s.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return m.s.withCommenter(c), nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	var comments []*models.Comment
	for _, c := range m.s.comments {
		if c.PostID == postID {
			comments = append(comments, m.s.withCommenter(c))
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

// Count returns the number of stored comments.
func (m *CommentRepository) Count() int {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()
	return len(m.s.comments)
}

func (s *Store) withAuthor(p *models.Post) *models.Post {
	cp := *p
	if u, ok := s.users[p.AuthorID]; ok {
		cp.AuthorName = u.Name
	}
	return &cp
}

func (s *Store) withCommenter(c *models.Comment) *models.Comment {
	cp := *c
	if u, ok := s.users[c.AuthorID]; ok {
		cp.AuthorName = u.Name
		cp.AuthorEmail = u.Email
	}
	return &cp
}

var (
	_ repositories.UserRepository    = (*UserRepository)(nil)
	_ repositories.PostRepository    = (*PostRepository)(nil)
	_ repositories.CommentRepository = (*CommentRepository)(nil)
)
