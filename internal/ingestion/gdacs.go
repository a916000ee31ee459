package ingestion

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

type gdacsRSS struct {
	Channel gdacsChannel `xml:"channel"`
}
type gdacsChannel struct {
	Items []gdacsItem `xml:"item"`
}
type gdacsItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	EventType   string `xml:"http://www.gdacs.org eventtype"`
	AlertLevel  string `xml:"http://www.gdacs.org alertlevel"`
	EventID     string `xml:"http://www.gdacs.org eventid"`
	Country     string `xml:"http://www.gdacs.org country"`
}

func (m *Manager) pollGDACS(ctx context.Context, url string) ([]models.AlertDraft, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data gdacsRSS
	if err := xml.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	drafts := make([]models.AlertDraft, 0, len(data.Channel.Items))
	for _, item := range data.Channel.Items {
		if item.EventID == "" {
			slog.Warn("GDACS item without event id", "title", item.Title)
			continue
		}

		message := strings.TrimSpace(item.Description)
		if message == "" {
			message = item.Title
		}

		drafts = append(drafts, models.AlertDraft{
			Type:        mapGDACSAlertLevel(item.AlertLevel),
			Title:       item.Title,
			Message:     message,
			Location:    item.Country,
			Source:      sourceGDACS,
			ExternalRef: sourceGDACS + "_" + strings.ToLower(item.EventType) + "_" + item.EventID,
		})
	}

	return drafts, nil
}

func mapGDACSAlertLevel(level string) models.AlertType {
	switch strings.ToLower(level) {
	case "red":
		return models.AlertTypeCritical
	case "orange":
		return models.AlertTypeWarning
	default:
		return models.AlertTypeInfo
	}
}
