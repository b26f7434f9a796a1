package db

import (
	"encoding/json"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketWords      = "Words"
	bucketUsersWords = "UsersWords"
	bucketUsers      = "Users"
	bucketSessions   = "Sessions"
)

// BoltStorage implements storage interface for BoltDB
type BoltStorage struct {
	db *bolt.DB
}

// GetWord returns word record from database
func (b *BoltStorage) GetWord(id string) (WordRecord, error) {
	var res WordRecord
	if err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketWords)).Get([]byte(id))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &res); err != nil {
			return fmt.Errorf("failed to unmarshal word: %w", err)
		}
		return nil
	}); err != nil {
		return WordRecord{}, err
	}
	return res, nil
}

// SaveWord saves word record and indexes it under its owner
func (b *BoltStorage) SaveWord(word WordRecord) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(word)
		if err != nil {
			return fmt.Errorf("failed to marshal word: %w", err)
		}
		if err := tx.Bucket([]byte(bucketWords)).Put([]byte(word.ID), jdata); err != nil {
			return fmt.Errorf("failed to put word: %w", err)
		}
		ownerBucket, err := tx.Bucket([]byte(bucketUsersWords)).
			CreateBucketIfNotExists(userKey(word.Owner))
		if err != nil {
			return fmt.Errorf("failed to create owner bucket: %w", err)
		}
		if err := ownerBucket.Put([]byte(word.ID), nil); err != nil {
			return fmt.Errorf("failed to index word: %w", err)
		}
		return nil
	})
}

// DeleteWord removes word record and its owner index entry
func (b *BoltStorage) DeleteWord(id string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		words := tx.Bucket([]byte(bucketWords))
		jdata := words.Get([]byte(id))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		var word WordRecord
		if err := json.Unmarshal(jdata, &word); err != nil {
			return fmt.Errorf("failed to unmarshal word: %w", err)
		}
		if err := words.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete word: %w", err)
		}
		if ownerBucket := tx.Bucket([]byte(bucketUsersWords)).Bucket(userKey(word.Owner)); ownerBucket != nil {
			if err := ownerBucket.Delete([]byte(id)); err != nil {
				return fmt.Errorf("failed to delete word index: %w", err)
			}
		}
		return nil
	})
}

// UserWords returns all word records owned by user
func (b *BoltStorage) UserWords(user UserID) ([]WordRecord, error) {
	var words []WordRecord
	if err := b.db.View(func(tx *bolt.Tx) error {
		ownerBucket := tx.Bucket([]byte(bucketUsersWords)).Bucket(userKey(user))
		if ownerBucket == nil {
			return nil
		}
		wordsBucket := tx.Bucket([]byte(bucketWords))
		return ownerBucket.ForEach(func(id, _ []byte) error {
			jdata := wordsBucket.Get(id)
			if len(jdata) == 0 {
				// stale index entry
				return nil
			}
			var word WordRecord
			if err := json.Unmarshal(jdata, &word); err != nil {
				return fmt.Errorf("failed to unmarshal word: %w", err)
			}
			words = append(words, word)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return words, nil
}

// GetUser returns user from database
func (b *BoltStorage) GetUser(id UserID) (User, error) {
	var user User
	if err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketUsers)).Get(userKey(id))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &user); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		return nil
	}); err != nil {
		return User{}, err
	}
	return user, nil
}

// SaveUser saves user to database
func (b *BoltStorage) SaveUser(user User) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		if err := tx.Bucket([]byte(bucketUsers)).Put(userKey(user.ID), jdata); err != nil {
			return fmt.Errorf("failed to put user: %w", err)
		}
		return nil
	})
}

// SaveSession saves practice session to database
func (b *BoltStorage) SaveSession(s Session) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		jdata, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		if err := tx.Bucket([]byte(bucketSessions)).Put([]byte(s.ID), jdata); err != nil {
			return fmt.Errorf("failed to put session: %w", err)
		}
		return nil
	})
}

// GetSession returns practice session from database
func (b *BoltStorage) GetSession(id string) (Session, error) {
	var s Session
	if err := b.db.View(func(tx *bolt.Tx) error {
		jdata := tx.Bucket([]byte(bucketSessions)).Get([]byte(id))
		if len(jdata) == 0 {
			return ErrNotFound
		}
		if err := json.Unmarshal(jdata, &s); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return nil
	}); err != nil {
		return Session{}, err
	}
	return s, nil
}

func userKey(id UserID) []byte {
	return []byte(strconv.FormatInt(int64(id), 10))
}

// NewBoltStorage creates BoltStorage instance and initialize buckets
func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketWords, bucketUsersWords, bucketUsers, bucketSessions} {
			_, err := tx.CreateBucketIfNotExists([]byte(bucket))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}
