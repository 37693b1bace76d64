package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"aeskit/internal/auth"
	"aeskit/internal/metrics"
	"aeskit/internal/models"
	"aeskit/internal/services/vector"
	"aeskit/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type generateReq struct {
	Algorithm       string `json:"algorithm"`
	Mode            string `json:"mode"`
	TestMode        string `json:"test_mode"`
	KatVariant      string `json:"kat_variant"`
	KeyBits         int    `json:"key_bits"`
	Count           int    `json:"count"`
	IncludeExpected bool   `json:"include_expected"`
	Format          string `json:"format"`
}

// persistVectors stores ENCRYPT and DECRYPT rows under one batch id.
func persistVectors(tx *gorm.DB, userID, batchID string, vec vector.TestVector, params models.JSONB) error {
	rows := make([]models.Vector, 0, len(vec.Encrypt)+len(vec.Decrypt))
	add := func(dir string, r vector.Record, in, out string) {
		row := models.Vector{
			BatchID:   batchID,
			UserID:    userID,
			Algorithm: vec.Algorithm,
			Mode:      vec.Mode,
			TestMode:  vec.TestMode,
			KeyBits:   vec.KeyBits,
			Direction: dir,
			Count:     r.Count,
			KeyHex:    r.KeyHex,
			IVHex:     r.IVHex,
			InputHex:  in,
			Params:    params,
		}
		if out != "" {
			row.OutputHex = sp(out)
		}
		rows = append(rows, row)
	}
	for _, r := range vec.Encrypt {
		add("ENCRYPT", r, r.Plaintext, r.Ciphertext)
	}
	for _, r := range vec.Decrypt {
		add("DECRYPT", r, r.Ciphertext, r.Plaintext)
	}
	return tx.Create(&rows).Error
}

// POST /v1/vectors/generate
func GenerateVectors(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Algorithm) == "" || strings.TrimSpace(req.Mode) == "" || strings.TrimSpace(req.TestMode) == "" {
			http.Error(w, "algorithm, mode and test_mode are required", http.StatusBadRequest)
			return
		}

		vec, err := vector.Generate(req.Algorithm, req.Mode, req.TestMode, vector.GenParams{
			KeyBits:         req.KeyBits,
			Count:           req.Count,
			IncludeExpected: req.IncludeExpected,
			KatVariant:      req.KatVariant,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		uid := auth.Subject(r.Context())
		batchID := uuid.NewString()
		params := models.NewJSONB(req)
		if err := db.Transaction(func(tx *gorm.DB) error {
			return persistVectors(tx, uid, batchID, vec, params)
		}); err != nil {
			lg.Errorw("persist vectors failed", "batch_id", batchID, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.VectorsGenerated.WithLabelValues(vec.Algorithm, vec.TestMode).Add(float64(len(vec.Encrypt) + len(vec.Decrypt)))
		if err := store.Audit(r.Context(), db, uid, "VECTOR_GENERATE", map[string]any{
			"batch_id": batchID, "algorithm": vec.Algorithm, "mode": vec.Mode, "test_mode": vec.TestMode, "key_bits": vec.KeyBits,
		}); err != nil {
			lg.Warnw("audit failed", "action", "VECTOR_GENERATE", "error", err)
		}

		w.Header().Set("X-Batch-ID", batchID)
		if strings.EqualFold(req.Format, "txt") {
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%s_%s_%s_%d.txt",
					strings.ToLower(vec.Algorithm), strings.ToLower(vec.Mode), strings.ToLower(vec.TestMode), vec.KeyBits))
			_, _ = w.Write([]byte(vec.ToTXT(req.IncludeExpected)))
			return
		}
		respondJSON(w, map[string]any{"batch_id": batchID, "vector": vec})
	}
}

// POST /v1/vectors/validate (multipart: file, algorithm, mode, test_mode)
func ValidateVectors(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "multipart parse error", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		alg := r.FormValue("algorithm")
		if alg == "" {
			alg = "AES"
		}
		mode := r.FormValue("mode")
		monte := false
		if tm := r.FormValue("test_mode"); tm != "" {
			t, err := vector.ParseTestMode(tm)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			monte = t == vector.MCT
		}

		recs, err := vector.ParseFile(file)
		if err != nil {
			http.Error(w, "parse error: "+err.Error(), http.StatusBadRequest)
			return
		}
		result, err := vector.Validate(alg, mode, recs, monte)
		if err != nil {
			http.Error(w, "validate error: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.Audit(r.Context(), db, uid, "VECTOR_VALIDATE", map[string]any{
			"algorithm": strings.ToUpper(alg), "mode": strings.ToUpper(mode), "total": result.Total, "failed": result.Failed,
		}); err != nil {
			lg.Warnw("audit failed", "action", "VECTOR_VALIDATE", "error", err)
		}
		respondJSON(w, result)
	}
}

// GET /v1/vectors[?batch_id=]
func ListVectors(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.WithContext(r.Context()).Where("user_id = ?", auth.Subject(r.Context()))
		if b := r.URL.Query().Get("batch_id"); b != "" {
			if err := uuid.Validate(b); err != nil {
				http.Error(w, "batch_id must be a valid UUID", http.StatusBadRequest)
				return
			}
			q = q.Where("batch_id = ?", b)
		}
		var rows []models.Vector
		if err := q.Order("created_at desc, id").Limit(500).Find(&rows).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			lg.Errorw("list vectors failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, rows)
	}
}
