package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const (
	prefixWord      = "word:"
	prefixUser      = "user:"
	prefixUserWords = "user_words:"
	prefixSession   = "session:"
)

// RedisStorage implements storage interface for Redis
type RedisStorage struct {
	db *redis.Client
}

// GetWord returns word record from redis
func (s *RedisStorage) GetWord(id string) (WordRecord, error) {
	data, err := s.db.Get(context.Background(), prefixWord+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return WordRecord{}, ErrNotFound
		}
		return WordRecord{}, fmt.Errorf("fetching word: %w", err)
	}
	var word WordRecord
	if jerr := json.Unmarshal([]byte(data), &word); jerr != nil {
		return word, fmt.Errorf("unmarshal word: %w", jerr)
	}
	return word, nil
}

// SaveWord saves word record and indexes it under its owner
func (s *RedisStorage) SaveWord(word WordRecord) error {
	jdata, jerr := json.Marshal(word)
	if jerr != nil {
		return fmt.Errorf("marshal word: %w", jerr)
	}
	if err := s.db.Set(context.Background(), prefixWord+word.ID, string(jdata), 0).Err(); err != nil {
		return fmt.Errorf("saving word: %w", err)
	}
	ownerKey := prefixUserWords + strconv.FormatInt(int64(word.Owner), 10)
	if err := s.db.HSet(context.Background(), ownerKey, word.ID, "1").Err(); err != nil {
		return fmt.Errorf("indexing word: %w", err)
	}
	return nil
}

// DeleteWord removes word record and its owner index entry
func (s *RedisStorage) DeleteWord(id string) error {
	word, err := s.GetWord(id)
	if err != nil {
		return err
	}
	if err := s.db.Del(context.Background(), prefixWord+id).Err(); err != nil {
		return fmt.Errorf("deleting word: %w", err)
	}
	ownerKey := prefixUserWords + strconv.FormatInt(int64(word.Owner), 10)
	if err := s.db.HDel(context.Background(), ownerKey, id).Err(); err != nil {
		return fmt.Errorf("deleting word index: %w", err)
	}
	return nil
}

// UserWords returns all word records owned by user
func (s *RedisStorage) UserWords(user UserID) ([]WordRecord, error) {
	ownerKey := prefixUserWords + strconv.FormatInt(int64(user), 10)
	ids, err := s.db.HKeys(context.Background(), ownerKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching word index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, prefixWord+id)
	}
	values, err := s.db.MGet(context.Background(), keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching words: %w", err)
	}
	words := make([]WordRecord, 0, len(values))
	for _, v := range values {
		jdata, ok := v.(string)
		if !ok {
			// index entry without a stored word
			continue
		}
		var word WordRecord
		if jerr := json.Unmarshal([]byte(jdata), &word); jerr != nil {
			return nil, fmt.Errorf("unmarshal word: %w", jerr)
		}
		words = append(words, word)
	}
	return words, nil
}

// GetUser returns user from redis
func (s *RedisStorage) GetUser(id UserID) (User, error) {
	data, err := s.db.Get(context.Background(), prefixUser+strconv.FormatInt(int64(id), 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("fetching user: %w", err)
	}
	var user User
	if jerr := json.Unmarshal([]byte(data), &user); jerr != nil {
		return user, fmt.Errorf("unmarshal user: %w", jerr)
	}
	return user, nil
}

// SaveUser saves user to redis
func (s *RedisStorage) SaveUser(user User) error {
	key := prefixUser + strconv.FormatInt(int64(user.ID), 10)
	jdata, jerr := json.Marshal(user)
	if jerr != nil {
		return fmt.Errorf("marshal user: %w", jerr)
	}
	if err := s.db.Set(context.Background(), key, string(jdata), 0).Err(); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// SaveSession saves practice session to redis
func (s *RedisStorage) SaveSession(session Session) error {
	jdata, jerr := json.Marshal(session)
	if jerr != nil {
		return fmt.Errorf("marshal session: %w", jerr)
	}
	if err := s.db.Set(context.Background(), prefixSession+session.ID, string(jdata), 0).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// GetSession returns practice session from redis
func (s *RedisStorage) GetSession(id string) (Session, error) {
	data, err := s.db.Get(context.Background(), prefixSession+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("fetching session: %w", err)
	}
	var session Session
	if jerr := json.Unmarshal([]byte(data), &session); jerr != nil {
		return session, fmt.Errorf("unmarshal session: %w", jerr)
	}
	return session, nil
}

// NewRedisStorage creates RedisStorage with given url
func NewRedisStorage(url string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{db: rdb}, nil
}
