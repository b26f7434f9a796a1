package db

import "sync"

// InMemoryStorage keeps everything in maps, for tests and local runs
type InMemoryStorage struct {
	words    map[string]WordRecord
	users    map[UserID]User
	sessions map[string]Session
	mx       sync.RWMutex
}

func (d *InMemoryStorage) GetWord(id string) (WordRecord, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	word, ok := d.words[id]
	if !ok {
		return WordRecord{}, ErrNotFound
	}
	return word, nil
}

func (d *InMemoryStorage) SaveWord(word WordRecord) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.words[word.ID] = word
	return nil
}

func (d *InMemoryStorage) DeleteWord(id string) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	if _, ok := d.words[id]; !ok {
		return ErrNotFound
	}
	delete(d.words, id)
	return nil
}

func (d *InMemoryStorage) UserWords(user UserID) ([]WordRecord, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	var words []WordRecord
	for _, word := range d.words {
		if word.Owner == user {
			words = append(words, word)
		}
	}
	return words, nil
}

func (d *InMemoryStorage) GetUser(id UserID) (User, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	user, ok := d.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (d *InMemoryStorage) SaveUser(user User) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.users[user.ID] = user
	return nil
}

func (d *InMemoryStorage) SaveSession(s Session) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.sessions[s.ID] = s
	return nil
}

func (d *InMemoryStorage) GetSession(id string) (Session, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	s, ok := d.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		words:    make(map[string]WordRecord),
		users:    make(map[UserID]User),
		sessions: make(map[string]Session),
	}
}
