package crisis

import "sync"

// SessionStore 活跃会话注册表的抽象
// 注入接口是为了测试用内存实现, 持久化归档由基础设施层负责
type SessionStore interface {
	Put(s *Session)
	Get(id string) (*Session, bool)
	GetByUser(userId string) (*Session, bool)
	Delete(id string)
}

// MemoryStore 互斥锁保护的内存实现
// 不同会话的并发请求可以安全交错
type MemoryStore struct {
	mu     sync.RWMutex
	byId   map[string]*Session
	byUser map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byId:   make(map[string]*Session),
		byUser: make(map[string]string),
	}
}

func (s *MemoryStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byId[session.Id] = session
	s.byUser[session.UserId] = session.Id
}

func (s *MemoryStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.byId[id]
	return session, ok
}

func (s *MemoryStore) GetByUser(userId string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUser[userId]
	if !ok {
		return nil, false
	}
	session, ok := s.byId[id]
	return session, ok
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.byId[id]; ok {
		if s.byUser[session.UserId] == id {
			delete(s.byUser, session.UserId)
		}
		delete(s.byId, id)
	}
}
