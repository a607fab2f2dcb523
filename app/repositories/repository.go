package repositories

import (
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"starlog/app/apperr"
	"starlog/app/models"
)

// Repository persists entities as JSON documents in a Badger key-value store.
// A post document embeds its section list inline; comments and users are
// separate documents referencing posts by identifier.
type Repository struct {
	db       *badger.DB
	mutex    sync.RWMutex
	dbPath   string
	isTestDB bool
}

// NewRepository opens a Badger-backed repository at path. An empty path
// creates a unique temporary directory for testing, cleaned up on Close.
func NewRepository(path string) (*Repository, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "starlog_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %v", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperr.Store("open", err)
	}
	if isTest {
		if err := db.DropAll(); err != nil {
			return nil, apperr.Store("drop all", err)
		}
	}
	return &Repository{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
	}, nil
}

// Close releases the underlying store. Test databases are removed from disk.
func (r *Repository) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if err := r.db.Close(); err != nil {
		return apperr.Store("close", err)
	}
	if r.isTestDB {
		if err := os.RemoveAll(r.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %v", err)
		}
	}
	return nil
}

func (r *Repository) set(key string, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	return apperr.Store("set "+key, err)
}

func (r *Repository) get(key string, entity interface{}) error {
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, entity)
		})
	})
	return apperr.Store("get "+key, err)
}

func (r *Repository) delete(key string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	return apperr.Store("delete "+key, err)
}

// iterate hands every document value under prefix to visit, in key order.
func (r *Repository) iterate(prefix string, visit func(val []byte) error) error {
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(visit); err != nil {
				return err
			}
		}
		return nil
	})
	return apperr.Store("scan "+prefix, err)
}

// Post methods

func (r *Repository) Create(post *models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	post.BeforeCreate()
	return r.set(PostKeyPrefix+post.ID, post)
}

func (r *Repository) GetByID(id string) (*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	var post models.Post
	if err := r.get(PostKeyPrefix+id, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) ListByStatus(status models.Status) ([]*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	var posts []*models.Post
	err := r.iterate(PostKeyPrefix, func(val []byte) error {
		var post models.Post
		if err := unmarshalEntity(val, &post); err != nil {
			return err
		}
		if post.Status == status {
			posts = append(posts, &post)
		}
		return nil
	})
	return posts, err
}

func (r *Repository) ListByAuthor(authorID string) ([]*models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	var posts []*models.Post
	err := r.iterate(PostKeyPrefix, func(val []byte) error {
		var post models.Post
		if err := unmarshalEntity(val, &post); err != nil {
			return err
		}
		if post.AuthorID == authorID {
			posts = append(posts, &post)
		}
		return nil
	})
	return posts, err
}

func (r *Repository) Update(post *models.Post) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.set(PostKeyPrefix+post.ID, post)
}

func (r *Repository) Delete(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.delete(PostKeyPrefix + id)
}

// Comment methods are exposed through CommentStore so one Repository value can
// back both repository interfaces without method name collisions.

// Comments returns the comment view of the repository.
func (r *Repository) Comments() *CommentStore { return &CommentStore{r} }

// Users returns the user view of the repository.
func (r *Repository) Users() *UserStore { return &UserStore{r} }

// CommentStore implements CommentRepository over the shared Badger store.
type CommentStore struct {
	r *Repository
}

func (s *CommentStore) Create(comment *models.Comment) error {
	s.r.mutex.Lock()
	defer s.r.mutex.Unlock()
	comment.BeforeCreate()
	return s.r.set(CommentKeyPrefix+comment.ID, comment)
}

func (s *CommentStore) GetByID(id string) (*models.Comment, error) {
	s.r.mutex.RLock()
	defer s.r.mutex.RUnlock()
	var comment models.Comment
	if err := s.r.get(CommentKeyPrefix+id, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentStore) ListByPost(postID string) ([]*models.Comment, error) {
	s.r.mutex.RLock()
	defer s.r.mutex.RUnlock()
	var comments []*models.Comment
	err := s.r.iterate(CommentKeyPrefix, func(val []byte) error {
		var comment models.Comment
		if err := unmarshalEntity(val, &comment); err != nil {
			return err
		}
		if comment.PostID == postID {
			comments = append(comments, &comment)
		}
		return nil
	})
	return comments, err
}

func (s *CommentStore) Delete(id string) error {
	s.r.mutex.Lock()
	defer s.r.mutex.Unlock()
	return s.r.delete(CommentKeyPrefix + id)
}

// UserStore implements UserRepository over the shared Badger store.
type UserStore struct {
	r *Repository
}

func (s *UserStore) Create(user *models.User) error {
	s.r.mutex.Lock()
	defer s.r.mutex.Unlock()
	user.BeforeCreate()
	return s.r.set(UserKeyPrefix+user.ID, user)
}

func (s *UserStore) GetByID(id string) (*models.User, error) {
	s.r.mutex.RLock()
	defer s.r.mutex.RUnlock()
	var user models.User
	if err := s.r.get(UserKeyPrefix+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	s.r.mutex.RLock()
	defer s.r.mutex.RUnlock()
	var found *models.User
	err := s.r.iterate(UserKeyPrefix, func(val []byte) error {
		var user models.User
		if err := unmarshalEntity(val, &user); err != nil {
			return err
		}
		if user.Email == email {
			found = &user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.ErrNotFound
	}
	return found, nil
}
