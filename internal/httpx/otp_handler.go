package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/trovelabs/storefront-api.git/internal/otp"
)

type OTPHandler struct {
	Ledger *otp.Ledger
	// DevMode echoes the raw code in send responses. Never enable outside
	// development.
	DevMode bool
}

type sendOTPReq struct {
	PhoneNumber string `json:"phoneNumber"`
}

type sendOTPResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`
}

type verifyOTPReq struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

type verifyOTPResp struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h *OTPHandler) Register(r *chi.Mux) {
	r.Post("/api/send-otp", h.sendOTP)
	r.Post("/api/verify-otp", h.verifyOTP)
}

func (h *OTPHandler) sendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	code, err := h.Ledger.SendOTP(ctx, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, otp.ErrPhoneRequired) {
			writeError(w, http.StatusBadRequest, "Phone number is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	resp := sendOTPResp{Success: true, Message: "OTP sent successfully"}
	if h.DevMode {
		resp.OTP = code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *OTPHandler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PhoneNumber == "" || req.OTP == "" {
		writeError(w, http.StatusBadRequest, "Phone number and OTP are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	phone, err := h.Ledger.VerifyOTP(ctx, req.PhoneNumber, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrNotFound),
			errors.Is(err, otp.ErrExpired),
			errors.Is(err, otp.ErrTooManyAttempts),
			errors.Is(err, otp.ErrInvalidCode):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to verify OTP")
		}
		return
	}

	writeJSON(w, http.StatusOK, verifyOTPResp{
		Success:     true,
		Message:     "Phone number verified successfully",
		PhoneNumber: phone,
	})
}
