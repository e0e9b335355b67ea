package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	baseURL := os.Getenv("FOLLOWGRAPH_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	fmt.Println("Starting smoke test against", baseURL)
	client := &http.Client{Timeout: 10 * time.Second}

	if !waitHealthy(client, baseURL, 30*time.Second) {
		fmt.Println("FAILED: server never became healthy")
		os.Exit(1)
	}
	fmt.Println("PASSED: health")

	body, ok := get(client, baseURL+"/summary")
	if !ok {
		fmt.Println("FAILED: summary")
		os.Exit(1)
	}
	var summary map[string]json.RawMessage
	if err := json.Unmarshal(body, &summary); err != nil {
		fmt.Printf("FAILED: summary is not a JSON object: %v\n", err)
		os.Exit(1)
	}
	for _, key := range []string{"candidates", "num_nodes", "num_edges"} {
		if _, found := summary[key]; !found {
			fmt.Printf("FAILED: summary missing %q\n", key)
			os.Exit(1)
		}
	}
	fmt.Println("PASSED: summary")

	body, ok = get(client, baseURL+"/graph")
	if !ok || !strings.Contains(string(body), "digraph") {
		fmt.Println("FAILED: graph")
		os.Exit(1)
	}
	fmt.Println("PASSED: graph")

	if _, ok := get(client, baseURL+"/communities"); !ok {
		fmt.Println("FAILED: communities")
		os.Exit(1)
	}
	fmt.Println("PASSED: communities")
}

func waitHealthy(client *http.Client, baseURL string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(time.Second)
	}
	return false
}

func get(client *http.Client, url string) ([]byte, bool) {
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(body))
		return nil, false
	}
	return body, true
}
