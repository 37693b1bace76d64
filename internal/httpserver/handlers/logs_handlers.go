package handlers

import (
	"net/http"

	"aeskit/internal/auth"
	"aeskit/internal/models"
	"aeskit/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MyLogs returns recent audit logs. Regular users see their own logs.
// Administrators can pass ?all=1 to see recent logs for everyone.
func MyLogs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := auth.FromContext(r.Context())
		uid := c.Subject
		if r.URL.Query().Get("all") == "1" && c.HasRole(models.RoleAdministrator) {
			uid = ""
		}
		logs, err := store.AuditLogs(r.Context(), db, uid, 200)
		if err != nil {
			lg.Errorw("list audit logs failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, logs)
	}
}
