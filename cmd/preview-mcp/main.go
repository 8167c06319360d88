// preview-mcp bridges the preview HTTP API to MCP clients over stdio,
// exposing metadata extraction and URL normalization as tools.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// envelope mirrors the API's common response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

// extractData mirrors the fields of the extract-metadata payload the bridge
// surfaces to MCP clients.
type extractData struct {
	URL      string `json:"url"`
	Resolved struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Image       string `json:"image"`
		SiteName    string `json:"siteName"`
		Type        string `json:"type"`
		Language    string `json:"language"`
		Price       *struct {
			Raw      string  `json:"raw"`
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		} `json:"price"`
	} `json:"resolved"`
	URLTransformation struct {
		Original   string `json:"original"`
		Normalized string `json:"normalized"`
		Cleaned    bool   `json:"cleaned"`
		ProductID  string `json:"productId"`
		Hostname   string `json:"hostname"`
	} `json:"urlTransformation"`
}

func main() {
	apiURL := os.Getenv("PREVIEW_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:3000"
	}
	apiKey := os.Getenv("PREVIEW_API_KEY")

	s := server.NewMCPServer(
		"centscape-preview",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	previewTool := mcp.NewTool("preview_url",
		mcp.WithDescription("Extract product metadata (title, image, price, site name) from a product page URL. The URL is canonicalized first so tracking-tagged variants resolve identically."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The product page URL to preview"),
		),
	)
	s.AddTool(previewTool, handlePreviewURL(apiURL, apiKey))

	normalizeTool := mcp.NewTool("normalize_url",
		mcp.WithDescription("Canonicalize an e-commerce URL: extract the stable product identifier and strip tracking parameters."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to normalize"),
		),
	)
	s.AddTool(normalizeTool, handleNormalizeURL(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handlePreviewURL(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/extract-metadata", map[string]any{"url": url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extract request failed: %v", err)), nil
		}

		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if !env.Success {
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", env.Code, env.Error)), nil
		}

		var data extractData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse metadata: %v", err)), nil
		}

		r := data.Resolved
		var sb bytes.Buffer
		fmt.Fprintf(&sb, "Title: %s\n", r.Title)
		if r.Price != nil {
			fmt.Fprintf(&sb, "Price: %s (%s %.2f)\n", r.Price.Raw, r.Price.Currency, r.Price.Amount)
		}
		if r.SiteName != "" {
			fmt.Fprintf(&sb, "Site: %s\n", r.SiteName)
		}
		if r.Image != "" {
			fmt.Fprintf(&sb, "Image: %s\n", r.Image)
		}
		if r.Description != "" {
			fmt.Fprintf(&sb, "Description: %s\n", r.Description)
		}
		fmt.Fprintf(&sb, "Canonical URL: %s\n", data.URLTransformation.Normalized)
		if data.URLTransformation.ProductID != "" {
			fmt.Fprintf(&sb, "Product ID: %s\n", data.URLTransformation.ProductID)
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleNormalizeURL(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 10 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/normalize-url", map[string]any{"url": url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("normalize request failed: %v", err)), nil
		}

		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if !env.Success {
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", env.Code, env.Error)), nil
		}

		// The normalized record is already small; return it as pretty JSON.
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, env.Data, "", "  "); err != nil {
			pretty.Write(env.Data)
		}

		return mcp.NewToolResultText(pretty.String()), nil
	}
}

// apiPost sends a POST request to the preview API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
