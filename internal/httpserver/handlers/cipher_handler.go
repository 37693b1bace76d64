package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"aeskit/internal/cipherapi"
	"aeskit/internal/metrics"
	"aeskit/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cipher serves POST /api/cipher. Any failure is a 400 whose plain-text body
// is the error message. db may be nil, in which case nothing is audited.
func Cipher(db *gorm.DB, lg *zap.SugaredLogger, parallel bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cipherapi.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		op := strings.ToLower(strings.TrimSpace(req.Operation))
		mode := strings.ToUpper(strings.TrimSpace(req.Mode))

		start := time.Now()
		res, err := cipherapi.Run(req, cipherapi.Options{Parallel: parallel})
		// labels are normalised inside ObserveCipher
		metrics.ObserveCipher(op, mode, len(req.Text), time.Since(start), err)
		if err != nil {
			lg.Infow("cipher request rejected", "operation", op, "mode", mode, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		md := map[string]any{
			"operation":     op,
			"mode":          mode,
			"key_bits":      len(strings.Join(strings.Fields(req.KeyHex), "")) * 4,
			"encoding_used": res.EncodingUsed,
			"auto_padded":   res.AutoPadded,
		}
		if err := store.Audit(r.Context(), db, "", "CIPHER", md); err != nil {
			lg.Warnw("audit failed", "action", "CIPHER", "error", err)
		}
		respondJSON(w, res)
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]string{"status": "ok"})
	}
}
