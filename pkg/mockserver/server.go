package mockserver

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/registry"
	"github.com/dshills/aedificium/pkg/session"
)

var logger = log.New(os.Stderr, "[mockserver] ", log.LstdFlags)

// Server holds every registered id's judge session in memory, optionally
// mirroring each mutation to store.
type Server struct {
	mu       sync.RWMutex
	sessions map[string]*session.State

	store        *session.Store // nil disables persistence
	withCharcoal bool
}

// New builds a Server. store may be nil to disable persistence entirely
// (sessions live only in memory for the life of the process).
func New(store *session.Store) *Server {
	return &Server{
		sessions:     make(map[string]*session.State),
		store:        store,
		withCharcoal: true,
	}
}

// Router builds the gin.Engine exposing the judge protocol.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.POST("/register", s.handleRegister)
	r.POST("/select", s.handleSelect)
	r.POST("/explore", s.handleExplore)
	r.POST("/guess", s.handleGuess)
	r.POST("/spoiler", s.handleSpoiler)
	return r
}

type registerRequest struct {
	Name  string `json:"name" binding:"required"`
	PL    string `json:"pl"`
	Email string `json:"email"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := uuid.NewString()
	logger.Printf("registered %q as id %s", req.Name, id)
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type selectRequest struct {
	ID          string `json:"id" binding:"required"`
	ProblemName string `json:"problemName" binding:"required"`
}

func (s *Server) handleSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := registry.Lookup(req.ProblemName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := uint64(time.Now().UnixNano())
	if registry.IsSynthetic(req.ProblemName) {
		seed, err = registry.Seed(req.ProblemName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	graph, err := registry.RandomFull(p, seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	st := &session.State{ID: req.ID, ProblemName: req.ProblemName, Map: graph}
	s.mu.Lock()
	s.sessions[req.ID] = st
	s.mu.Unlock()
	s.persist(st)

	logger.Printf("id %s selected %q (k=%d d=%d)", req.ID, req.ProblemName, p.K, p.D)
	c.JSON(http.StatusOK, gin.H{"problemName": req.ProblemName})
}

type exploreRequest struct {
	ID    string   `json:"id" binding:"required"`
	Plans []string `json:"plans" binding:"required"`
}

func (s *Server) handleExplore(c *gin.Context) {
	var req exploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := s.activeSession(req.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	results := make([][]int, len(req.Plans))
	for i, planText := range req.Plans {
		tokens, err := aedificium.ParsePlan(planText)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if limit := 6 * st.Map.N(); aedificium.MoveCount(tokens) > limit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "plan exceeds the 6*N move-token limit"})
			return
		}
		results[i] = aedificium.Simulate(tokens, st.Map)
	}

	s.mu.Lock()
	st.QueryCount += len(req.Plans) + 1
	queryCount := st.QueryCount
	s.mu.Unlock()
	s.persist(st)

	c.JSON(http.StatusOK, gin.H{"results": results, "queryCount": queryCount})
}

type guessRequest struct {
	ID  string                 `json:"id" binding:"required"`
	Map *aedificium.Aedificium `json:"map" binding:"required"`
}

func (s *Server) handleGuess(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := s.activeSession(req.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := req.Map.Build(); err != nil {
		c.JSON(http.StatusOK, gin.H{"correct": false, "reason": err.Error()})
		s.endSession(req.ID)
		return
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	reason, disagree := aedificium.EquivalenceTest(st.Map, req.Map, s.withCharcoal, rnd)
	s.endSession(req.ID)

	if disagree {
		c.JSON(http.StatusOK, gin.H{"correct": false, "reason": reason})
		return
	}
	c.JSON(http.StatusOK, gin.H{"correct": true})
}

type spoilerRequest struct {
	ID string `json:"id" binding:"required"`
}

func (s *Server) handleSpoiler(c *gin.Context) {
	var req spoilerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := s.activeSession(req.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"map": st.Map})
}

// activeSession returns the in-memory session for id, or an error if none
// has been selected.
func (s *Server) activeSession(id string) (*session.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, errNoActiveSession(id)
	}
	return st, nil
}

// endSession clears id's in-memory and persisted state: a guess, right or
// wrong, ends the session, and the caller must select again.
func (s *Server) endSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Delete(id); err != nil {
			logger.Printf("clearing persisted session %s: %v", id, err)
		}
	}
}

func (s *Server) persist(st *session.State) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(st); err != nil {
		logger.Printf("persisting session %s: %v", st.ID, err)
	}
}

type errNoActiveSession string

func (e errNoActiveSession) Error() string {
	return "no active session for id " + string(e)
}
