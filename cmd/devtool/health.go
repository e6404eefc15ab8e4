package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const slowHealthThreshold = time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server (default: http://localhost:8080)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := "http://localhost:" + getEnv("PORT", "8080")
	if len(args) > 0 {
		baseURL = strings.TrimRight(args[0], "/")
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	client := &http.Client{Timeout: 5 * time.Second}
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		status, err := checkEndpoint(client, baseURL+path)
		duration := time.Since(start)
		if err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}

		if duration > slowHealthThreshold {
			PrintWarning("%s %s: slow response time (%v)", path, status, duration)
		} else {
			PrintSuccess("%s %s (response time: %v)", path, status, duration)
		}
	}

	return nil
}

func checkEndpoint(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != http.StatusOK {
		if body.Message != "" {
			return "", fmt.Errorf("status %d: %s", resp.StatusCode, body.Message)
		}
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	return body.Status, nil
}
