package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/video"
)

func (s *Server) video(c *gin.Context) {
	id := c.Param("videoId")

	meta, err := s.deps.Fetcher.Fetch(c.Request.Context(), id)
	switch {
	case errors.Is(err, video.ErrInvalidID):
		abort(c, http.StatusBadRequest, constant.MsgInvalidVideoID)
	case err != nil:
		log.Errorf("video %s: %v", id, err)
		abort(c, http.StatusInternalServerError, constant.MsgVideoFetchFailed)
	case meta.IsAbsent():
		abort(c, http.StatusNotFound, constant.MsgVideoNotFound)
	default:
		c.JSON(http.StatusOK, meta.MustGet())
	}
}

// AccessResponse is the body of /api/unblock/check.
type AccessResponse struct {
	video.Access
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) check(c *gin.Context) {
	id := c.Param("videoId")

	access, err := s.deps.Checker.Check(c.Request.Context(), id)
	if err != nil {
		abort(c, http.StatusBadRequest, constant.MsgInvalidVideoID)
		return
	}

	resp := AccessResponse{
		Access:    access,
		Message:   constant.MsgAccessible,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if !access.Accessible {
		resp.Message = constant.MsgMaybeBlocked
		resp.Error = constant.MsgMaybeBlocked
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) resolve(c *gin.Context) {
	id, err := video.ExtractID(c.Query("url"))
	if err != nil {
		abort(c, http.StatusBadRequest, constant.MsgInvalidURL)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videoId":  id,
		"embedUrl": video.EmbedURL(id),
	})
}

func (s *Server) thumbnail(c *gin.Context) {
	id := c.Param("videoId")
	if !video.ValidID(id) {
		abort(c, http.StatusBadRequest, constant.MsgInvalidVideoID)
		return
	}

	transform, err := video.ParseTransform(c.Query("format"), c.Query("resize"), c.Query("quality"))
	if err != nil {
		abort(c, http.StatusBadRequest, constant.MsgInvalidParams)
		return
	}

	img, err := s.deps.Thumbnailer.Fetch(c.Request.Context(), id, transform)
	if err != nil {
		log.Debugf("thumbnail %s: %v", id, err)
		c.Header("Cache-Control", "no-store")
		abort(c, http.StatusNotFound, constant.MsgThumbnailMissing)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

func (s *Server) search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := s.deps.Searcher.Search(c.Request.Context(), c.Query("q"), limit)
	switch {
	case errors.Is(err, video.ErrEmptyQuery):
		abort(c, http.StatusBadRequest, constant.MsgQueryRequired)
	case err != nil:
		log.Warnf("search: %v", err)
		abort(c, http.StatusBadGateway, constant.MsgSearchFailed)
	default:
		c.JSON(http.StatusOK, result)
	}
}
