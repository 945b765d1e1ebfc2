package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lvdund/ueprofiles/pkg/logging"
	"github.com/lvdund/ueprofiles/pkg/model"
)

// generateRequest は一括生成のリクエストボディ
type generateRequest struct {
	NumUEs int `json:"num_ues"`
}

// HandleListProfiles はGET /ue_profiles のハンドラー。
func (h *Handler) HandleListProfiles(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context(), c.GetString(OwnerKey))
	if err != nil {
		h.writeError(c, logging.EventAPIError, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// HandleGetProfile はGET /ue_profiles/:supi のハンドラー。
func (h *Handler) HandleGetProfile(c *gin.Context) {
	supi := c.Param("supi")
	p, err := h.profiles.Get(c.Request.Context(), c.GetString(OwnerKey), supi)
	if err != nil {
		h.writeError(c, logging.EventAPIError, err, h.fields.WithSUPI(supi))
		return
	}
	c.JSON(http.StatusOK, p)
}

// HandleCreateProfiles はPOST /ue_profiles のハンドラー。
// ボディはUEプロファイルの配列。
func (h *Handler) HandleCreateProfiles(c *gin.Context) {
	var body []model.UEProfile
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, logging.EventProfileCreate, "request body must be an array of UE profiles")
		return
	}
	profiles := make([]*model.UEProfile, len(body))
	for i := range body {
		profiles[i] = &body[i]
	}

	if err := h.profiles.Create(c.Request.Context(), c.GetString(OwnerKey), profiles); err != nil {
		h.writeError(c, logging.EventProfileCreate, err)
		return
	}

	for _, p := range profiles {
		slog.Info("UE profile created",
			h.fields.ProfileLogFields(c.GetString(TraceIDKey), logging.EventProfileCreate, p.SUPI)...,
		)
	}
	c.JSON(http.StatusCreated, gin.H{"message": "UE profiles created"})
}

// HandleUpdateProfile はPUT /ue_profiles/:supi のハンドラー。
func (h *Handler) HandleUpdateProfile(c *gin.Context) {
	supi := c.Param("supi")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		h.badRequest(c, logging.EventProfileUpdate, "request body must be a JSON object")
		return
	}

	p, err := h.profiles.Update(c.Request.Context(), c.GetString(OwnerKey), supi, fields)
	if err != nil {
		h.writeError(c, logging.EventProfileUpdate, err, h.fields.WithSUPI(supi))
		return
	}

	slog.Info("UE profile updated",
		h.fields.ProfileLogFields(c.GetString(TraceIDKey), logging.EventProfileUpdate, supi)...,
	)
	c.JSON(http.StatusOK, p)
}

// HandleDeleteProfile はDELETE /ue_profiles/:supi のハンドラー。
func (h *Handler) HandleDeleteProfile(c *gin.Context) {
	supi := c.Param("supi")
	if err := h.profiles.Delete(c.Request.Context(), c.GetString(OwnerKey), supi); err != nil {
		h.writeError(c, logging.EventProfileDelete, err, h.fields.WithSUPI(supi))
		return
	}

	slog.Info("UE profile deleted",
		h.fields.ProfileLogFields(c.GetString(TraceIDKey), logging.EventProfileDelete, supi)...,
	)
	c.JSON(http.StatusOK, gin.H{"message": "UE profile deleted"})
}

// HandleGenerateProfiles はPOST /ue_profiles/generate のハンドラー。
func (h *Handler) HandleGenerateProfiles(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, logging.EventProfileGenerate, "request body must contain num_ues")
		return
	}
	if req.NumUEs <= 0 || req.NumUEs > h.cfg.MaxGenerate {
		h.badRequest(c, logging.EventProfileGenerate,
			fmt.Sprintf("num_ues must be between 1 and %d", h.cfg.MaxGenerate))
		return
	}

	profiles, err := h.generator.Generate(req.NumUEs)
	if err != nil {
		h.writeError(c, logging.EventProfileGenerate, err)
		return
	}
	if err := h.profiles.Create(c.Request.Context(), c.GetString(OwnerKey), profiles); err != nil {
		h.writeError(c, logging.EventProfileGenerate, err, logging.WithCount(req.NumUEs))
		return
	}

	slog.Info("UE profiles generated",
		logging.WithTraceID(c.GetString(TraceIDKey)),
		logging.WithEventID(logging.EventProfileGenerate),
		logging.WithUsername(c.GetString(OwnerKey)),
		logging.WithCount(len(profiles)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"message":     "UE profiles generated",
		"ue_profiles": profiles,
	})
}
