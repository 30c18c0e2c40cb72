package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toumei/toumei/constant"
)

func (s *Server) proxy(c *gin.Context) {
	fwd, ok := s.deps.Forwarders[c.Param("token")]
	if !ok {
		abort(c, http.StatusNotFound, constant.MsgUnknownTarget)
		return
	}

	fwd.ServeHTTP(c.Writer, c.Request)
}
