package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	notionVersion    = "2022-06-28"
	notionTimeLayout = "2006-01-02T15:04:05-07:00"
)

// NotionClient speaks the Notion HTTP API for the calendar database. It is
// the only place the integration token is attached.
type NotionClient struct {
	cfg    NotionConfig
	loc    *time.Location
	client *http.Client
}

func NewNotionClient(cfg NotionConfig, loc *time.Location) *NotionClient {
	return &NotionClient{
		cfg:    cfg,
		loc:    loc,
		client: &http.Client{Timeout: remoteCallTimeout},
	}
}

// Notion wire shapes, limited to the title and date properties this
// database uses.
type notionText struct {
	Content string `json:"content"`
}

type notionRichText struct {
	PlainText string      `json:"plain_text,omitempty"`
	Text      *notionText `json:"text,omitempty"`
}

type notionDate struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

type notionProperty struct {
	Title []notionRichText `json:"title,omitempty"`
	Date  *notionDate      `json:"date,omitempty"`
}

type notionPage struct {
	Properties map[string]notionProperty `json:"properties"`
}

type notionQueryResponse struct {
	Results []notionPage `json:"results"`
}

// QueryReservations returns all reservations whose date property falls in
// the inclusive [firstDate, lastDate] range. Pages without a complete date
// range are skipped.
func (c *NotionClient) QueryReservations(ctx context.Context, firstDate, lastDate time.Time) ([]Reservation, error) {
	body := map[string]any{
		"filter": map[string]any{
			"property": c.cfg.DateProperty,
			"date": map[string]string{
				"on_or_after":  firstDate.Format(dateLayout),
				"on_or_before": lastDate.Format(dateLayout),
			},
		},
	}
	var resp notionQueryResponse
	url := fmt.Sprintf("%s/v1/databases/%s/query", c.cfg.BaseURL, c.cfg.DatabaseID)
	if err := c.do(ctx, http.MethodPost, url, body, &resp); err != nil {
		return nil, err
	}

	var out []Reservation
	for _, page := range resp.Results {
		date := page.Properties[c.cfg.DateProperty].Date
		if date == nil || date.Start == "" || date.End == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, date.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, date.End)
		if err != nil {
			continue
		}
		label := ""
		for _, rt := range page.Properties[c.cfg.TitleProperty].Title {
			label += rt.PlainText
		}
		out = append(out, Reservation{
			Start: start.In(c.loc),
			End:   end.In(c.loc),
			Label: label,
		})
	}
	return out, nil
}

// CreateReservation writes one reservation as a new page in the database.
func (c *NotionClient) CreateReservation(ctx context.Context, r Reservation) error {
	body := map[string]any{
		"parent": map[string]string{"database_id": c.cfg.DatabaseID},
		"properties": map[string]notionProperty{
			c.cfg.TitleProperty: {Title: []notionRichText{{Text: &notionText{Content: r.Label}}}},
			c.cfg.DateProperty: {Date: &notionDate{
				Start: r.Start.In(c.loc).Format(notionTimeLayout),
				End:   r.End.In(c.loc).Format(notionTimeLayout),
			}},
		},
	}
	return c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/pages", body, nil)
}

func (c *NotionClient) do(ctx context.Context, method, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode notion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("notion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notion %s %s: status %d: %s", method, url, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode notion response: %w", err)
	}
	return nil
}

// NotionOAuthConfig builds the OAuth2 config for connecting a workspace as a
// public integration. Returns nil when OAuth is not configured; an internal
// integration token works without it.
func NotionOAuthConfig(cfg NotionConfig) *oauth2.Config {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.BaseURL + "/v1/oauth/authorize",
			TokenURL: cfg.BaseURL + "/v1/oauth/token",
			// Notion wants client credentials as basic auth on the token endpoint.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// NotionAuthHandler starts the OAuth2 flow for connecting a workspace.
func (a *App) NotionAuthHandler(c *gin.Context) {
	conf := NotionOAuthConfig(a.Cfg.Notion)
	if conf == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Notion OAuth not configured"})
		return
	}
	state := fmt.Sprintf("connect_%d", time.Now().Unix())
	url := conf.AuthCodeURL(state, oauth2.SetAuthURLParam("owner", "user"))
	c.JSON(http.StatusOK, gin.H{"auth_url": url, "state": state})
}

// NotionOAuth2CallbackHandler exchanges the authorization code. The returned
// access token belongs in NOTION_TOKEN for subsequent runs.
func (a *App) NotionOAuth2CallbackHandler(c *gin.Context) {
	conf := NotionOAuthConfig(a.Cfg.Notion)
	if conf == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Notion OAuth not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "authorization code required"})
		return
	}
	token, err := conf.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code for token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Authorization successful",
		"workspace":    token.Extra("workspace_name"),
		"access_token": token.AccessToken,
	})
}
