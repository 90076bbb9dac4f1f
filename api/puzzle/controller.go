package puzzleapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/beka-birhanu/sheefra/puzzle"
	"github.com/beka-birhanu/sheefra/service"
	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PuzzleController handles HTTP requests related to puzzles.
type PuzzleController struct {
	puzzleService i.PuzzleService
}

// NewPuzzleController creates a new PuzzleController.
func NewPuzzleController(ps i.PuzzleService) *PuzzleController {
	return &PuzzleController{
		puzzleService: ps,
	}
}

// RegisterPublic registers public routes.
func (c *PuzzleController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/generators/:ID/puzzles", c.create)

	puzzles := route.Group("/puzzles")
	{
		puzzles.GET("/:ID", c.get)
		puzzles.POST("/:ID/reveal", c.reveal)
	}
}

// RegisterProtected registers routes that need a reveal token.
func (c *PuzzleController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/puzzles/:ID/solution", c.solution)
}

// create publishes the next walk of a generator as a puzzle.
func (c *PuzzleController) create(ctx *gin.Context) {
	generatorID, ok := pathID(ctx)
	if !ok {
		return
	}

	var request PuzzleRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := c.puzzleService.Create(ctx.Request.Context(), i.PuzzleRequest{
		GeneratorID: generatorID,
		Message:     request.Message,
		Fill:        request.Fill,
		Passphrase:  request.Passphrase,
	})
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, newPuzzleResponse(p))
}

func (c *PuzzleController) get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	p, err := c.puzzleService.Get(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, newPuzzleResponse(p))
}

// reveal trades the passphrase for a solution token.
func (c *PuzzleController) reveal(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var request RevealRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := c.puzzleService.Reveal(ctx.Request.Context(), id, request.Passphrase)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &RevealResponse{Token: token})
}

func (c *PuzzleController) solution(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	w, err := c.puzzleService.Solution(ctx.Request.Context(), id, ctx.GetString(ContextRevealToken))
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &SolutionResponse{Steps: w.Steps(), Arrows: w.String()})
}

func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, puzzle.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGeneratorExhausted):
		return http.StatusGone
	case errors.Is(err, walk.ErrStepBudgetExceeded), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, puzzle.ErrWeakPassphrase), errors.Is(err, puzzle.ErrMessageTooLong):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrWrongPassphrase):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTokenMismatch):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
