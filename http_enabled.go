//go:build http_enabled

package main

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var httpClient = &http.Client{Timeout: 20 * time.Second}

// makeHttpRequest makes a POST HTTP request to an endpoint and returns the
// body of the response as a string.
func makeHttpRequest(url string, fields map[string]string,
	files map[string][]byte) (string, error) {
	// Create a buffer to write our multipart form data.
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return "", err
		}
	}
	for k, v := range files {
		part, err := writer.CreateFormFile(k, k)
		if err != nil {
			return "", err
		}
		if _, err = part.Write(v); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	// Create a POST request with the multipart form data.
	request, err := http.NewRequest("POST", url, &requestBody)
	if err != nil {
		return "", err
	}
	request.Header.Set("content-type", writer.FormDataContentType())

	// Perform the request.
	response, err := httpClient.Do(request)
	if err != nil {
		return "", err
	}
	defer func(body io.ReadCloser) { _ = body.Close() }(response.Body)
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http request to %s failed: %d", url,
			response.StatusCode)
	}
	data, err := io.ReadAll(response.Body)
	return string(data), err
}

func UploadDataToDbHttp(user string,
	releaseVersion int64,
	simulationVersion int64,
	inputVersion int64,
	id uuid.UUID, data []byte) error {
	url := "https://playful-patterns.com/submit-playthrough-cutrope.php"
	_, err := makeHttpRequest(url,
		map[string]string{
			"user":               user,
			"release_version":    strconv.FormatInt(releaseVersion, 10),
			"simulation_version": strconv.FormatInt(simulationVersion, 10),
			"input_version":      strconv.FormatInt(inputVersion, 10),
			"id":                 id.String()},
		map[string][]byte{"playthrough": data})
	return err
}

func SetUserDataHttp(user string, data string) error {
	url := "https://playful-patterns.com/set-user-data-cutrope.php"
	_, err := makeHttpRequest(url,
		map[string]string{"user": user, "data": data},
		map[string][]byte{})
	return err
}

func GetUserDataHttp(user string) (string, error) {
	url := "https://playful-patterns.com/get-user-data-cutrope.php"
	return makeHttpRequest(url,
		map[string]string{"user": user},
		map[string][]byte{})
}
