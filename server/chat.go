package server

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/toumei/toumei/chat"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/session"
)

// ChatRequest is the body of POST /api/chat/send.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatResponse is the answer to a ChatRequest.
type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Response  string `json:"response"`
}

func (s *Server) chatSend(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		abort(c, http.StatusBadRequest, constant.MsgMessageRequired)
		return
	}
	if s.deps.MaxMessageLength > 0 && utf8.RuneCountInString(req.Message) > s.deps.MaxMessageLength {
		abort(c, http.StatusBadRequest, constant.MsgMessageTooLong)
		return
	}

	ctx := c.Request.Context()
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = session.NewID()
	}

	reply := chat.Respond(req.Message)

	err := func() error {
		if _, err := s.deps.Store.CreateSession(ctx, sessionID, chat.Title(req.Message)); err != nil {
			return err
		}
		if _, err := s.deps.Store.AppendMessage(ctx, sessionID, session.RoleUser, req.Message); err != nil {
			return err
		}
		_, err := s.deps.Store.AppendMessage(ctx, sessionID, session.RoleAssistant, reply)
		return err
	}()
	if err != nil {
		log.Errorf("chat %s: %v", sessionID, err)
		abort(c, http.StatusInternalServerError, constant.MsgChatFailed)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{SessionID: sessionID, Response: reply})
}

func (s *Server) chatHistory(c *gin.Context) {
	messages, err := s.deps.Store.Messages(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		log.Errorf("chat history: %v", err)
		abort(c, http.StatusInternalServerError, constant.MsgHistoryFailed)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (s *Server) chatSessions(c *gin.Context) {
	sessions, err := s.deps.Store.Sessions(c.Request.Context())
	if err != nil {
		log.Errorf("chat sessions: %v", err)
		abort(c, http.StatusInternalServerError, constant.MsgSessionsFailed)
		return
	}

	if q := c.Query("q"); q != "" {
		sessions = lo.Filter(sessions, func(sess session.Session, _ int) bool {
			return fuzzy.MatchNormalizedFold(q, sess.Title)
		})
	}

	c.JSON(http.StatusOK, sessions)
}
