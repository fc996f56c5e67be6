package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/iqbalrsyd/reog-commerce/internal/models"
)

// response is the envelope every API endpoint returns
type response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      *errorBody  `json:"error,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondOK writes a success envelope with data
func respondOK(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: message, Data: data})
}

// respondCreated writes a success envelope with 201
func respondCreated(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, response{Success: true, Message: message, Data: data})
}

// respondPage writes a success envelope with data and pagination
func respondPage(w http.ResponseWriter, message string, data, pagination interface{}) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: message, Data: data, Pagination: pagination})
}

// respondError maps a service error onto the envelope. Unknown errors are
// logged and reported as internal without leaking detail.
func respondError(w http.ResponseWriter, err error) {
	status := models.ErrorStatus(err)
	body := response{
		Success: false,
		Message: err.Error(),
		Error:   &errorBody{Code: models.ErrorCode(err)},
	}
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		body.Message = "internal server error"
	}
	writeJSON(w, status, body)
}

// respondBadRequest writes a 400 with the INVALID_INPUT code
func respondBadRequest(w http.ResponseWriter, details string) {
	writeJSON(w, http.StatusBadRequest, response{
		Success: false,
		Message: "invalid request",
		Error:   &errorBody{Code: "INVALID_INPUT", Details: details},
	})
}

// decodeBody decodes a JSON request body into dest
func decodeBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}
