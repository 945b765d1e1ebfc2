package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lvdund/ueprofiles/pkg/logging"
)

// credentialsRequest はregister/loginのリクエストボディ
type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleRegister はPOST /register のハンドラー。
func (h *Handler) HandleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, logging.EventAuthRegister, "username and password are required")
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		h.writeError(c, logging.EventAuthRegister, err, logging.WithUsername(req.Username))
		return
	}

	slog.Info("user registered",
		logging.WithTraceID(c.GetString(TraceIDKey)),
		logging.WithEventID(logging.EventAuthRegister),
		logging.WithUsername(req.Username),
	)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// HandleLogin はPOST /login のハンドラー。
func (h *Handler) HandleLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, logging.EventAuthLogin, "username and password are required")
		return
	}

	if _, err := h.users.Authenticate(ctx, req.Username, req.Password); err != nil {
		h.writeError(c, logging.EventAuthLogin, err, logging.WithUsername(req.Username))
		return
	}
	token, err := h.tokens.Issue(ctx, req.Username)
	if err != nil {
		h.writeError(c, logging.EventAuthLogin, err, logging.WithUsername(req.Username))
		return
	}

	slog.Info("user logged in",
		logging.WithTraceID(c.GetString(TraceIDKey)),
		logging.WithEventID(logging.EventAuthLogin),
		logging.WithUsername(req.Username),
	)
	c.JSON(http.StatusOK, gin.H{"token": token.Token})
}

// HandleLogout はPOST /logout のハンドラー。
// 認証ミドルウェアの後段で呼ばれる。
func (h *Handler) HandleLogout(c *gin.Context) {
	owner := c.GetString(OwnerKey)
	if err := h.tokens.Revoke(c.Request.Context(), c.GetString(TokenKey)); err != nil {
		h.writeError(c, logging.EventAuthLogout, err, logging.WithUsername(owner))
		return
	}

	slog.Info("user logged out",
		logging.WithTraceID(c.GetString(TraceIDKey)),
		logging.WithEventID(logging.EventAuthLogout),
		logging.WithUsername(owner),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
