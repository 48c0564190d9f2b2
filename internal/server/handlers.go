package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/abenet15/maze"
	"github.com/abenet15/maze/internal/mazefile"
)

type errorResponse struct {
	Error string `json:"error"`
}

type solveResponse struct {
	Name     string    `json:"name,omitempty"`
	Found    bool      `json:"found"`
	Path     maze.Path `json:"path,omitempty"`
	Cost     int       `json:"cost"`
	Expanded int       `json:"expanded"`
	Cached   bool      `json:"cached"`
}

type sessionResponse struct {
	ID    string      `json:"id"`
	Size  int         `json:"size"`
	Start maze.Cell   `json:"start"`
	Goal  maze.Cell   `json:"goal"`
	Walls []maze.Cell `json:"walls"`
}

type snapshotResponse struct {
	ID string `json:"id"`
	maze.StepSnapshot
}

// playFrame is one websocket message during playback.
type playFrame struct {
	Step  int       `json:"step"`
	Cell  maze.Cell `json:"cell"`
	Done  bool      `json:"done"`
	Found bool      `json:"found"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleHealth(c *gin.Context) {
	live := s.sessionCount()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": live})
}

func bindMaze(c *gin.Context) (mazefile.Maze, bool) {
	var doc mazefile.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return mazefile.Maze{}, false
	}
	m, err := doc.Build()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return mazefile.Maze{}, false
	}
	return m, true
}

func writeSearchError(c *gin.Context, err error) {
	if errors.Is(err, maze.ErrInvalidInput) {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func (s *Server) handleSolve(c *gin.Context) {
	m, ok := bindMaze(c)
	if !ok {
		return
	}
	result, cached, err := s.deps.Solver.Solve(c.Request.Context(), m.Grid, m.Start, m.Goal)
	if err != nil {
		writeSearchError(c, err)
		return
	}
	c.JSON(http.StatusOK, solveResponse{
		Name:     m.Name,
		Found:    result.Found,
		Path:     result.Path,
		Cost:     result.Cost,
		Expanded: result.Expanded,
		Cached:   cached,
	})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	m, ok := bindMaze(c)
	if !ok {
		return
	}
	stepper, err := maze.NewStepper(m.Grid, m.Start, m.Goal, s.deps.Options...)
	if err != nil {
		writeSearchError(c, err)
		return
	}

	id := uuid.New().String()
	s.addSession(id, &session{maze: m, stepper: stepper})

	s.logger.Info("session created", "id", id, "size", m.Grid.Size())
	c.JSON(http.StatusCreated, sessionResponse{
		ID:    id,
		Size:  m.Grid.Size(),
		Start: m.Start,
		Goal:  m.Goal,
		Walls: walls(m.Grid),
	})
}

func walls(grid *maze.Grid) []maze.Cell {
	out := []maze.Cell{}
	for r := 0; r < grid.Size(); r++ {
		for col := 0; col < grid.Size(); col++ {
			if c := (maze.Cell{Row: r, Col: col}); !grid.Passable(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// withSession runs fn while holding the session's own lock, so a stepper is
// never advanced concurrently.
func (s *Server) withSession(c *gin.Context, fn func(id string, sess *session)) {
	id := c.Param("id")
	sess, ok := s.lookupSession(id)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(id, sess)
}

func (s *Server) handleSnapshot(c *gin.Context) {
	s.withSession(c, func(id string, sess *session) {
		c.JSON(http.StatusOK, snapshotResponse{ID: id, StepSnapshot: sess.stepper.Snapshot()})
	})
}

func (s *Server) handleNext(c *gin.Context) {
	s.withSession(c, func(id string, sess *session) {
		c.JSON(http.StatusOK, snapshotResponse{ID: id, StepSnapshot: sess.stepper.Step()})
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if !s.removeSession(c.Param("id")) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// handlePlay solves the session's maze and streams the path one cell per
// step delay, then closes the connection.
func (s *Server) handlePlay(c *gin.Context) {
	var m mazefile.Maze
	found := false
	s.withSession(c, func(_ string, sess *session) {
		m = sess.maze
		found = true
	})
	if !found {
		return
	}

	result, _, err := s.deps.Solver.Solve(c.Request.Context(), m.Grid, m.Start, m.Goal)
	if err != nil {
		writeSearchError(c, err)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()

	if !result.Found {
		_ = ws.WriteJSON(playFrame{Done: true})
		return
	}

	ticker := time.NewTicker(max(s.deps.StepDelay, time.Millisecond))
	defer ticker.Stop()
	ctx := c.Request.Context()
	for i, cell := range result.Path {
		frame := playFrame{Step: i, Cell: cell, Done: i == len(result.Path)-1, Found: true}
		if err := ws.WriteJSON(frame); err != nil {
			s.logger.Warn("websocket write failed", "error", err)
			return
		}
		if frame.Done {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
	_ = ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "playback complete"))
}
