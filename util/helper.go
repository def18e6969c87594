package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"github.com/skip2/go-qrcode"
)

// Global logger
var LOGGER = slog.New(slog.NewTextHandler(os.Stdout, nil))

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate a random string with length n. The character possible is defined in the alphabet constant
func RandomString(n int) string {
	var sb strings.Builder
	k := len(alphabet)

	for range n {
		c := alphabet[rand.Intn(k)]
		sb.WriteByte(c)
	}

	return sb.String()
}

// Generate QR
func GenerateQR(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 256)
}

// Generate slug
func GenerateSlug(content string) string {
	return slug.Make(content)
}

// Make an authenticated JSON request and decode the response body into result.
// result can be nil if the caller doesn't care about the response body
func MakeRequest(method, url string, body map[string]any, token string, result any) (int, error) {
	var (
		req *http.Request
		err error
	)

	if body != nil {
		// build body
		data, err := json.Marshal(body)
		if err != nil {
			return http.StatusInternalServerError, err
		}
		req, err = http.NewRequest(method, url, bytes.NewBuffer(data))
		if err != nil {
			return http.StatusInternalServerError, err
		}
	} else {
		req, err = http.NewRequest(method, url, nil)
		if err != nil {
			return http.StatusInternalServerError, err
		}
	}

	// Set request header
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	// Make request
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return http.StatusInternalServerError, err
	}
	defer resp.Body.Close()

	// Check if status code is success
	if 200 > resp.StatusCode || resp.StatusCode >= 300 {
		message, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("response status not ok: %s", string(message)+" "+resp.Status)
	}

	if result == nil {
		return resp.StatusCode, nil
	}

	// Parse response body
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return http.StatusInternalServerError, err
	}

	return resp.StatusCode, nil
}
