package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/YouSangSon/movie-catalog-service/internal/application/dto"
	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/YouSangSon/movie-catalog-service/internal/auth"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	apperrors "github.com/YouSangSon/movie-catalog-service/internal/pkg/errors"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MovieHandler는 영화 카탈로그 HTTP 핸들러입니다
type MovieHandler struct {
	catalogUC *usecase.CatalogUseCase
	gate      *auth.Gate
}

// NewMovieHandler는 새로운 MovieHandler를 생성합니다
func NewMovieHandler(catalogUC *usecase.CatalogUseCase, gate *auth.Gate) *MovieHandler {
	return &MovieHandler{
		catalogUC: catalogUC,
		gate:      gate,
	}
}

// ErrorResponse는 에러 응답 구조체입니다
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// List godoc
// @Summary      List all movies
// @Description  Return every movie in the catalog in insertion order
// @Tags         movies
// @Produce      json
// @Success      200  {object}  dto.ListMoviesResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/movies [get]
func (h *MovieHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	movies, err := h.catalogUC.ListMovies(ctx)
	if err != nil {
		logger.Error(ctx, "failed to list movies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ListMoviesResponse{Movies: movies})
}

// Login godoc
// @Summary      Admin login
// @Description  Validate the shared admin password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.LoginRequest  true  "Login request"
// @Success      200      {object}  dto.SuccessResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /api/login [post]
func (h *MovieHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid password"})
		return
	}

	if !h.gate.Authorize(req.Password) {
		logger.Warn(ctx, "admin login rejected", logger.RemoteAddr(c.ClientIP()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid password"})
		return
	}

	logger.Info(ctx, "admin login succeeded", logger.RemoteAddr(c.ClientIP()))
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Create godoc
// @Summary      Add a movie
// @Description  Assign the next catalog ID to the movie and append it
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        admin-password  header    string            true  "Admin password"
// @Param        request         body      dto.MovieRequest  true  "Movie to add"
// @Success      201             {object}  dto.MovieResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      401             {object}  ErrorResponse
// @Failure      500             {object}  ErrorResponse
// @Router       /api/movies [post]
func (h *MovieHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	movie, err := h.catalogUC.AddMovie(ctx, req.ToEntity())
	if err != nil {
		h.writeError(c, "failed to add movie", err)
		return
	}

	c.JSON(http.StatusCreated, dto.MovieResponse{Success: true, Movie: movie})
}

// Update godoc
// @Summary      Update a movie
// @Description  Replace the content of the movie with the given ID; the ID itself never changes
// @Tags         movies
// @Accept       json
// @Produce      json
// @Param        admin-password  header    string            true  "Admin password"
// @Param        id              path      int               true  "Movie ID"
// @Param        request         body      dto.MovieRequest  true  "Replacement content"
// @Success      200             {object}  dto.MovieResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      401             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Failure      500             {object}  ErrorResponse
// @Router       /api/movies/{id} [put]
func (h *MovieHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid movie id"})
		return
	}

	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	movie, err := h.catalogUC.UpdateMovie(ctx, id, req.ToEntity())
	if err != nil {
		h.writeError(c, "failed to update movie", err)
		return
	}

	c.JSON(http.StatusOK, dto.MovieResponse{Success: true, Movie: movie})
}

// Delete godoc
// @Summary      Delete a movie
// @Description  Remove the movie with the given ID; deleting an absent ID succeeds
// @Tags         movies
// @Produce      json
// @Param        admin-password  header    string  true  "Admin password"
// @Param        id              path      int     true  "Movie ID"
// @Success      200             {object}  dto.SuccessResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      401             {object}  ErrorResponse
// @Failure      500             {object}  ErrorResponse
// @Router       /api/movies/{id} [delete]
func (h *MovieHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid movie id"})
		return
	}

	if err := h.catalogUC.RemoveMovie(ctx, id); err != nil {
		h.writeError(c, "failed to delete movie", err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// writeError는 도메인 에러를 HTTP 응답으로 변환합니다.
// 저장소 내부 사정은 응답 본문에 노출하지 않습니다.
func (h *MovieHandler) writeError(c *gin.Context, logMsg string, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, entity.ErrInvalidTitle), errors.Is(err, entity.ErrInvalidGenre):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid movie",
			Message: err.Error(),
		})
	case errors.Is(err, entity.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Movie not found"})
	default:
		appErr := apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal server error")
		logger.Error(ctx, logMsg,
			logger.ErrorCode(string(appErr.Code)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
