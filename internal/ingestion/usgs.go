package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
}
type usgsProperties struct {
	Mag     float64 `json:"mag"`
	Place   string  `json:"place"`
	Time    int64   `json:"time"` // unix millis
	Title   string  `json:"title"`
	Tsunami int     `json:"tsunami"` // 0 or 1
}

func (m *Manager) pollUSGS(ctx context.Context, url string) ([]models.AlertDraft, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	drafts := make([]models.AlertDraft, 0, len(data.Features))
	for _, f := range data.Features {
		if f.ID == "" || f.Properties.Mag < m.cfg.Sources.USGSMinMagnitude {
			continue
		}

		message := fmt.Sprintf("Magnitude %.1f earthquake reported %s. Follow Drop, Cover, and Hold procedures if shaking is felt.", f.Properties.Mag, f.Properties.Place)
		if f.Properties.Tsunami == 1 {
			message += " A tsunami advisory may be in effect for coastal areas."
		}

		drafts = append(drafts, models.AlertDraft{
			Type:        earthquakeAlertType(f.Properties.Mag, f.Properties.Tsunami == 1),
			Title:       f.Properties.Title,
			Message:     message,
			Location:    f.Properties.Place,
			Source:      sourceUSGS,
			ExternalRef: sourceUSGS + "_" + f.ID,
		})
	}

	return drafts, nil
}

func earthquakeAlertType(mag float64, tsunami bool) models.AlertType {
	switch {
	case mag >= 6.0 || tsunami:
		return models.AlertTypeCritical
	case mag >= 4.5:
		return models.AlertTypeWarning
	default:
		return models.AlertTypeInfo
	}
}
