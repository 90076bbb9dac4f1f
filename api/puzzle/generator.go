package puzzleapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/sheefra/service"
	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/beka-birhanu/sheefra/walk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GeneratorController manages walk generator sessions.
type GeneratorController struct {
	generators i.GeneratorManager
}

// NewGeneratorController initializes a GeneratorController.
func NewGeneratorController(gm i.GeneratorManager) (*GeneratorController, error) {
	if gm == nil {
		return nil, errors.New("generator controller needs a generator manager")
	}
	return &GeneratorController{generators: gm}, nil
}

// RegisterPublic registers public routes.
func (gc *GeneratorController) RegisterPublic(route *gin.RouterGroup) {
	generators := route.Group("/generators")
	{
		generators.POST("", gc.open)
		generators.DELETE("/:ID", gc.close)
	}
}

// RegisterProtected registers protected routes.
func (gc *GeneratorController) RegisterProtected(route *gin.RouterGroup) {}

// open handles generator creation requests.
func (gc *GeneratorController) open(ctx *gin.Context) {
	var request GeneratorRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := request.toService()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := gc.generators.Open(req)
	if err != nil {
		if kind := walk.ConfigurationKind(err); kind != "" {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": kind})
			return
		}
		if errors.Is(err, service.ErrBoardTooLarge) || errors.Is(err, service.ErrEmptyBoard) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while opening generator"})
		return
	}

	ctx.JSON(http.StatusCreated, &GeneratorResponse{ID: id})
}

// close drops a generator session.
func (gc *GeneratorController) close(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid generator id"})
		return
	}

	if err := gc.generators.Close(ID); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (r *GeneratorRequest) toService() (i.GeneratorRequest, error) {
	req := i.GeneratorRequest{
		Width:  r.Width,
		Height: r.Height,
		Length: r.Length,
		Start:  r.Start,
		End:    r.End,
	}

	var err error
	if req.Parity, err = walk.ParseParityRule(r.Parity); err != nil {
		return req, err
	}
	if r.StartHeading != "" {
		h, err := walk.ParseHeading(r.StartHeading)
		if err != nil {
			return req, err
		}
		req.StartHeading = &h
	}
	if r.EndHeading != "" {
		h, err := walk.ParseHeading(r.EndHeading)
		if err != nil {
			return req, err
		}
		req.EndHeading = &h
	}
	return req, nil
}
