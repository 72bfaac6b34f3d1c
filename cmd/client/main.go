// Command client is a minimal CLI for exercising the summarize endpoint by
// hand.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

func main() {
	url := flag.String("url", "http://localhost:8000", "API base URL")
	model := flag.String("model", "", "model name")
	maxLength := flag.Int("max-length", 0, "maximum summary length in words (0 = unlimited)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	body, contentType, err := buildForm(path, *model, *maxLength)
	if err != nil {
		log.Fatalf("failed to build request: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Post(*url+"/summarize", contentType, body)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("server returned status %d: %s", resp.StatusCode, payload)
	}

	var result struct {
		Filename       string `json:"filename"`
		FileType       string `json:"file_type"`
		Model          string `json:"model"`
		OriginalLength int    `json:"original_length"`
		Summary        string `json:"summary"`
		SummaryLength  int    `json:"summary_length"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		log.Fatalf("failed to decode response: %v", err)
	}

	fmt.Printf("File: %s\n", result.Filename)
	fmt.Printf("Type: %s\n", result.FileType)
	fmt.Printf("Model: %s\n", result.Model)
	fmt.Printf("Original length: %d characters\n", result.OriginalLength)
	fmt.Printf("Summary length: %d characters\n", result.SummaryLength)
	fmt.Println()
	fmt.Println(result.Summary)
}

func buildForm(path, model string, maxLength int) (io.Reader, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer file.Close()
		part, err := writer.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if model != "" {
			if err := writer.WriteField("model", model); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		if maxLength != 0 {
			if err := writer.WriteField("max_length", strconv.Itoa(maxLength)); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType(), nil
}
