package puzzleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/beka-birhanu/sheefra/api"
	api_i "github.com/beka-birhanu/sheefra/api/i"
	"github.com/beka-birhanu/sheefra/infrastruture/token"
	"github.com/beka-birhanu/sheefra/puzzle"
	"github.com/beka-birhanu/sheefra/service"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passphrase = "seven-purple-lanterns-drift-east"

type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

type discardLogger struct{}

func (discardLogger) Info(string)    {}
func (discardLogger) Warning(string) {}
func (discardLogger) Error(string)   {}

type memoryRepo struct {
	puzzles map[uuid.UUID]*puzzle.Puzzle
	sync.Mutex
}

func (r *memoryRepo) Save(_ context.Context, p *puzzle.Puzzle) error {
	r.Lock()
	defer r.Unlock()
	r.puzzles[p.ID] = p
	return nil
}

func (r *memoryRepo) ByID(_ context.Context, id uuid.UUID) (*puzzle.Puzzle, error) {
	r.Lock()
	defer r.Unlock()
	p, ok := r.puzzles[id]
	if !ok {
		return nil, puzzle.ErrNotFound
	}
	return p, nil
}

func newHandler(t *testing.T, budget int) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	generators, err := service.NewGeneratorManager(&service.GeneratorConfig{
		Logger:       discardLogger{},
		StepBudget:   budget,
		MaxDimension: 16,
		Shuffler:     func() walk.Shuffler { return inOrder{} },
	})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "sheefra-test")
	puzzles, err := service.NewPuzzleService(&service.PuzzlesConfig{
		Generators: generators,
		PuzzleRepo: &memoryRepo{puzzles: make(map[uuid.UUID]*puzzle.Puzzle)},
		Tokenizer:  tokenizer,
		Logger:     discardLogger{},
	})
	require.NoError(t, err)

	generatorController, err := NewGeneratorController(generators)
	require.NoError(t, err)

	return api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{generatorController, NewPuzzleController(puzzles)},
		AuthorizationMiddleware: Authoriz(tokenizer),
	}).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for n := 0; n+1 < len(header); n += 2 {
		req.Header.Set(header[n], header[n+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func openSmall(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/generators", gin.H{
		"width": 3, "height": 3, "length": 5, "parity": "checkerboard",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out GeneratorResponse
	decode(t, rec, &out)
	return out.ID.String()
}

func TestGeneratorRoutes(t *testing.T) {
	h := newHandler(t, 0)

	t.Run("Open and close", func(t *testing.T) {
		id := openSmall(t, h)

		rec := do(t, h, http.MethodDelete, "/api/v1/generators/"+id, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, h, http.MethodDelete, "/api/v1/generators/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Preflight rejections report their kind", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/generators", gin.H{"width": 1, "height": 5, "length": 5})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var out map[string]string
		decode(t, rec, &out)
		assert.Equal(t, "degenerate-boundary", out["kind"])

		rec = do(t, h, http.MethodPost, "/api/v1/generators", gin.H{"width": 2, "height": 2, "length": 10})
		decode(t, rec, &out)
		assert.Equal(t, "length-too-long", out["kind"])
	})

	t.Run("Oversized board", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/generators", gin.H{"width": 17, "height": 5, "length": 5})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Malformed requests", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/generators", gin.H{"width": 3, "height": 3, "length": 5, "startHeading": "up"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(t, h, http.MethodPost, "/api/v1/generators", gin.H{"width": 3, "height": 3, "length": 5, "parity": "sometimes"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(t, h, http.MethodPost, "/api/v1/generators", gin.H{"width": 3})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(t, h, http.MethodDelete, "/api/v1/generators/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Corners and headings", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/generators", gin.H{
			"width": 3, "height": 3, "length": 5, "parity": "checkerboard",
			"start": gin.H{"x": 2, "y": 2}, "end": gin.H{"x": 0, "y": 0},
			"startHeading": "west", "endHeading": "N",
		})
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})
}

func TestPuzzleRoutes(t *testing.T) {
	h := newHandler(t, 0)
	generatorID := openSmall(t, h)

	rec := do(t, h, http.MethodPost, "/api/v1/generators/"+generatorID+"/puzzles", gin.H{
		"message": "HELLO", "fill": "#", "passphrase": passphrase,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created PuzzleResponse
	decode(t, rec, &created)
	assert.Equal(t, []string{"HE#", "#L#", "#LO"}, created.Rows)
	assert.NotContains(t, rec.Body.String(), "path")
	puzzleID := created.ID.String()

	t.Run("Get", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/puzzles/"+puzzleID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got PuzzleResponse
		decode(t, rec, &got)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, 5, got.Length)

		rec = do(t, h, http.MethodGet, "/api/v1/puzzles/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Reveal and read the solution", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/puzzles/"+puzzleID+"/reveal", gin.H{"passphrase": "guess"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = do(t, h, http.MethodGet, "/api/v1/puzzles/"+puzzleID+"/solution", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = do(t, h, http.MethodPost, "/api/v1/puzzles/"+puzzleID+"/reveal", gin.H{"passphrase": passphrase})
		require.Equal(t, http.StatusOK, rec.Code)
		var revealed RevealResponse
		decode(t, rec, &revealed)

		rec = do(t, h, http.MethodGet, "/api/v1/puzzles/"+puzzleID+"/solution", nil, "Authorization", "Bearer "+revealed.Token)
		require.Equal(t, http.StatusOK, rec.Code)
		var solution SolutionResponse
		decode(t, rec, &solution)
		assert.Equal(t, "0,0 →↓↓→→", solution.Arrows)
		assert.Len(t, solution.Steps, 5)

		rec = do(t, h, http.MethodGet, "/api/v1/puzzles/"+uuid.NewString()+"/solution", nil, "Authorization", "Bearer "+revealed.Token)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(t, h, http.MethodGet, "/api/v1/puzzles/"+puzzleID+"/solution", nil, "Authorization", "Token "+revealed.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Create errors", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/generators/"+generatorID+"/puzzles", gin.H{"message": "HI", "passphrase": "12345"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(t, h, http.MethodPost, "/api/v1/generators/"+uuid.NewString()+"/puzzles", gin.H{"passphrase": passphrase})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		for n := 0; n < 2; n++ {
			rec = do(t, h, http.MethodPost, "/api/v1/generators/"+generatorID+"/puzzles", gin.H{"passphrase": passphrase})
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		}
		rec = do(t, h, http.MethodPost, "/api/v1/generators/"+generatorID+"/puzzles", gin.H{"passphrase": passphrase})
		assert.Equal(t, http.StatusGone, rec.Code)
	})
}

func TestPuzzleRoutesStepBudget(t *testing.T) {
	h := newHandler(t, 1)
	generatorID := openSmall(t, h)

	rec := do(t, h, http.MethodPost, "/api/v1/generators/"+generatorID+"/puzzles", gin.H{"passphrase": passphrase})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	for attempt := 0; attempt < 100 && rec.Code == http.StatusServiceUnavailable; attempt++ {
		rec = do(t, h, http.MethodPost, "/api/v1/generators/"+generatorID+"/puzzles", gin.H{"passphrase": passphrase})
	}
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
