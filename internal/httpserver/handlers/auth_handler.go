package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"aeskit/internal/auth"
	"aeskit/internal/models"
	"aeskit/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues a bearer token and records its session.
func Login(db *gorm.DB, lg *zap.SugaredLogger, secret []byte, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var u models.User
		if err := db.Preload("Roles").First(&u, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if !u.IsActive || auth.CheckPassword(u.PasswordHash, req.Password) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if auth.NeedsRehash(u.PasswordHash) {
			if hash, err := auth.HashPassword(req.Password); err == nil {
				if err := db.Model(&u).Update("password_hash", hash).Error; err != nil {
					lg.Warnw("password rehash failed", "user_id", u.ID, "error", err)
				}
			}
		}
		tok, err := auth.Sign(secret, ttl, u.ID, u.RoleNames())
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		if err := db.Create(&models.Session{JTI: tok.JWTID, UserID: u.ID, ExpiresAt: tok.ExpiresAt}).Error; err != nil {
			lg.Errorw("session create failed", "user_id", u.ID, "error", err)
			http.Error(w, "session error", http.StatusInternalServerError)
			return
		}
		if err := store.Audit(r.Context(), db, u.ID, "LOGIN", map[string]any{"jti": tok.JWTID}); err != nil {
			lg.Warnw("audit failed", "action", "LOGIN", "error", err)
		}
		respondJSON(w, map[string]any{"token": tok.Raw, "expires_at": tok.ExpiresAt})
	}
}

func Logout(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := auth.FromContext(r.Context())
		now := time.Now()
		if err := db.Model(&models.Session{}).Where("jti = ?", c.JWTID).Update("revoked_at", &now).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := store.Audit(r.Context(), db, c.Subject, "LOGOUT", map[string]any{"jti": c.JWTID}); err != nil {
			lg.Warnw("audit failed", "action", "LOGOUT", "error", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		var u models.User
		if err := db.Preload("Roles").First(&u, "id = ?", sub).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, map[string]any{
			"id": u.ID, "email": u.Email, "roles": u.RoleNames(), "is_active": u.IsActive,
		})
	}
}
