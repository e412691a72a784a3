package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/Hardik8491/Gold-Coin-sub001/src/ai"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ratelimit"
	"github.com/Hardik8491/Gold-Coin-sub001/src/util"
)

const maxReceiptBytes = 10 << 20

func CategorizeTransaction(aiClient *ai.Client, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		if !limiter.Allow(fmt.Sprintf("%d", userID)) {
			util.WriteError(w, http.StatusTooManyRequests, util.KindRateLimited, "AI request limit reached, try again shortly")
			return
		}

		var req struct {
			Description string  `json:"description"`
			Amount      float64 `json:"amount"`
			Merchant    string  `json:"merchant"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid request")
			return
		}
		if req.Description == "" || req.Merchant == "" {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "description and merchant are required")
			return
		}

		result, err := aiClient.Categorize(r.Context(), req.Description, req.Amount, req.Merchant)
		if err != nil {
			log.Printf("ERROR: Categorization failed for user %d: %v", userID, err)
			if errors.Is(err, ai.ErrBadModelOutput) {
				// Defined fallback instead of a partial object.
				util.WriteJSON(w, http.StatusOK, ai.Categorization{
					Category:   "Uncategorized",
					Confidence: 0,
					Tags:       []string{},
				})
				return
			}
			util.WriteError(w, http.StatusInternalServerError, util.KindUpstream, "categorization failed")
			return
		}

		util.WriteJSON(w, http.StatusOK, result)
	}
}

func ScanReceipt(aiClient *ai.Client, limiter *ratelimit.Limiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())

		if !limiter.Allow(fmt.Sprintf("%d", userID)) {
			util.WriteError(w, http.StatusTooManyRequests, util.KindRateLimited, "AI request limit reached, try again shortly")
			return
		}

		if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "invalid multipart form")
			return
		}

		file, header, err := r.FormFile("receipt")
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, util.KindValidation, "receipt file is required")
			return
		}
		defer file.Close()

		image, err := io.ReadAll(io.LimitReader(file, maxReceiptBytes))
		if err != nil {
			log.Printf("ERROR: Failed to read receipt upload for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindInternal, "failed to read upload")
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "image/jpeg"
		}

		result, err := aiClient.ScanReceipt(r.Context(), image, mimeType)
		if err != nil {
			log.Printf("ERROR: Receipt scan failed for user %d: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, util.KindUpstream, "receipt scan failed")
			return
		}

		util.WriteJSON(w, http.StatusOK, result)
	}
}
