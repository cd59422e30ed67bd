package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TestResponse wraps the API response envelope for assertions.
type TestResponse struct {
	Code    int
	Status  string          `json:"status"`
	Message string          `json:"message"`
	RawData json.RawMessage `json:"data"`
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

// Object decodes the envelope payload as a single object.
func (r TestResponse) Object() map[string]interface{} {
	var obj map[string]interface{}
	json.Unmarshal(r.RawData, &obj)
	return obj
}

// List decodes the envelope payload as an array of objects.
func (r TestResponse) List() []map[string]interface{} {
	var list []map[string]interface{}
	json.Unmarshal(r.RawData, &list)
	return list
}

func (r TestResponse) GetString(key string) string {
	if v, ok := r.Object()[key].(string); ok {
		return v
	}
	return ""
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return TestResponse{Status: "error", Message: fmt.Sprintf("failed to marshal request body: %v", err)}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return TestResponse{Status: "error", Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return TestResponse{Status: "error", Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	var response TestResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return TestResponse{Status: "error", Message: fmt.Sprintf("failed to decode response: %v", err)}
	}
	response.Code = resp.StatusCode
	return response
}

func uniqueUID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// registerAndLogin creates a user with the given role and returns its token.
func registerAndLogin(role string) (uid, token string, err error) {
	uid = uniqueUID(role)
	const password = "test-password-1"

	regResp := makeRequest("POST", "/register", map[string]string{
		"uid":      uid,
		"username": "Test " + role,
		"password": password,
		"role":     role,
	}, "")
	if !regResp.IsSuccess() {
		return "", "", fmt.Errorf("register failed: %s", regResp.Message)
	}

	loginResp := makeRequest("POST", "/login", map[string]string{
		"uid":      uid,
		"password": password,
	}, "")
	if !loginResp.IsSuccess() {
		return "", "", fmt.Errorf("login failed: %s", loginResp.Message)
	}

	token = loginResp.GetString("token")
	if token == "" {
		return "", "", fmt.Errorf("no token in login response")
	}
	return uid, token, nil
}
