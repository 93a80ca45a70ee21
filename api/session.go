package api

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hoshinonyaruko/gridsnake/game"
	"github.com/hoshinonyaruko/gridsnake/structs"
)

// session 一局游戏；mu 保证同一局的 tick 串行执行
type session struct {
	id   string
	mu   sync.Mutex
	game *game.Game
}

// tick runs one engine tick under the session lock and returns the
// result with the score seen right after it.
func (s *session) tick(dir *structs.Direction) (structs.TickResult, uint8, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.game.Tick(dir)
	return res, s.game.Score(), s.game.Ticks()
}

// Sessions maps game ids to live games.
type Sessions struct {
	m sync.Map
}

func NewSessions() *Sessions {
	return &Sessions{}
}

// Create stores g under id, or a fresh uuid when id is empty.
// It reports false if id is already taken.
func (s *Sessions) Create(id string, g *game.Game) (*session, bool) {
	if id == "" {
		id = uuid.NewString()
	}
	sess := &session{id: id, game: g}
	if _, loaded := s.m.LoadOrStore(id, sess); loaded {
		return nil, false
	}
	return sess, true
}

func (s *Sessions) Get(id string) (*session, bool) {
	v, ok := s.m.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*session), true
}

func (s *Sessions) Delete(id string) bool {
	_, ok := s.m.LoadAndDelete(id)
	return ok
}
